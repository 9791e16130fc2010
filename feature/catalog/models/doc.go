// Package models defines the persisted brainrot catalog schema.
package models
