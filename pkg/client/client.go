package client

import (
	"context"
	"time"

	"rezkit/pkg/logger"
)

// Client bundles the external connections the engine owns. Mongo is
// nil until SetMongo is called, which lets the migration runner and
// sink-only deployments skip the connection entirely.
type Client struct {
	Mongo *MongoClient
}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) SetMongo(log *logger.Logger, mongoURI string, mongoConnTimeout time.Duration) {
	c.Mongo = NewMongoClient(log, mongoURI, mongoConnTimeout)
}

func (c *Client) GracefulShutdown() {
	if c.Mongo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	c.Mongo.Disconnect(ctx)
}
