// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

/*
Package events carries the behavior event stream.

Every cart mutation and every tracking call made through a session is
published as an Event on the tigana.behavior topic of an in-process
Watermill pub/sub. A supervised Consumer drains the topic and counts
events by kind.

The stream is observational. Publishing never blocks a mutation on a slow
consumer, and a failed publish is logged and counted, not returned to the
shopper.

# Wiring

	pubsub := events.NewPubSub(cfg, logger)
	pub := events.NewPublisher(pubsub, cfg.Topic, logger)
	consumer := events.NewConsumer(pubsub, cfg.Topic, logger)

	go consumer.Run(ctx)
	pub.Publish(ctx, events.FromCart(sessionID, action))
*/
package events
