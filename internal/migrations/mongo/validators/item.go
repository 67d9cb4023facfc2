package validators

import "go.mongodb.org/mongo-driver/bson"

var ItemValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"price_per_unit",
			"currency",
			"config",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 200,
			},

			"price_per_unit": bson.M{
				"bsonType":         "number",
				"exclusiveMinimum": true,
				"minimum":          0,
			},

			"currency": bson.M{
				"bsonType": "string",
				"pattern":  "^[A-Z]{3}$",
			},

			"availability_source": bson.M{
				"bsonType": "string",
				"pattern":  "^https://",
			},

			"config": bson.M{
				"bsonType": "object",
				"required": []string{
					"max_nights",
					"max_units",
					"base_guests_per_unit",
				},
				"properties": bson.M{
					"max_nights": bson.M{
						"bsonType": "int",
						"minimum":  1,
						"maximum":  365,
					},
					"max_units": bson.M{
						"bsonType": "int",
						"minimum":  1,
						"maximum":  100,
					},
					"max_guests": bson.M{
						"bsonType": "int",
						"minimum":  0,
						"maximum":  500,
					},
					"max_guests_per_unit": bson.M{
						"bsonType": "int",
						"minimum":  0,
						"maximum":  100,
					},
					"base_guests_per_unit": bson.M{
						"bsonType": "int",
						"minimum":  1,
						"maximum":  100,
					},
					"unit_label": bson.M{
						"bsonType":  "string",
						"maxLength": 50,
					},
					"has_city_tax": bson.M{
						"bsonType": "bool",
					},
					"city_tax_per_night": bson.M{
						"bsonType": "number",
						"minimum":  0,
					},
					"extra_person_fee": bson.M{
						"bsonType": "number",
						"minimum":  0,
					},
					"select_checkout": bson.M{
						"bsonType": "bool",
					},
					"per_person_pricing": bson.M{
						"bsonType": "bool",
					},
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
