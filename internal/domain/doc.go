// Package domain contains the core business entities, value objects, and
// domain logic of the application: word categories and their items,
// per-user word progress, daily activity counters, and user accounts.
// It is independent of any specific infrastructure or delivery mechanism.
package domain
