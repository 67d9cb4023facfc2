package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingRecordValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"reference",
			"item_id",
			"item_name",
			"check_in",
			"nights",
			"guests",
			"units",
			"total",
			"currency",
			"first_name",
			"last_name",
			"email",
			"transaction_id",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"reference": bson.M{
				"bsonType": "string",
				"pattern":  "^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$",
			},

			"item_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"item_name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 200,
			},

			"check_in": bson.M{
				"bsonType": "date",
			},

			"check_out": bson.M{
				"bsonType": "date",
			},

			"nights": bson.M{
				"bsonType": "int",
				"minimum":  1,
			},

			"guests": bson.M{
				"bsonType": "int",
				"minimum":  1,
			},

			"units": bson.M{
				"bsonType": "int",
				"minimum":  1,
			},

			"total": bson.M{
				"bsonType": "string",
				"pattern":  "^[0-9]+\\.[0-9]{2}$",
			},

			"currency": bson.M{
				"bsonType": "string",
				"pattern":  "^[A-Z]{3}$",
			},

			"first_name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"last_name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"email": bson.M{
				"bsonType": "string",
				"pattern":  "^.+@.+$",
			},

			"phone": bson.M{
				"bsonType": "string",
			},

			"country": bson.M{
				"bsonType": "string",
				"pattern":  "^[A-Z]{2}$",
			},

			"message": bson.M{
				"bsonType": "string",
			},

			"transaction_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
