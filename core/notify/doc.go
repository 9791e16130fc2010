// Package notify publishes sync pass results to downstream consumers.
//
// When NOTIFY_REDIS_ADDR is configured, results are JSON encoded and
// published on a redis pub/sub channel; otherwise events are dropped.
package notify
