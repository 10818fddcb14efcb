// Package mongodb implements the notification repository on MongoDB.
package mongodb
