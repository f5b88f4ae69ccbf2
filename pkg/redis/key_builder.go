package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string // Environment prefix (staging/prod)
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" || environment == "test" {
		prefix = "staging"
	}

	return &KeyBuilder{prefix: prefix}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// Geo search key builders
func (kb *KeyBuilder) KeyCourtsNearby(queryHash string) string {
	return kb.BuildKey(fmt.Sprintf(KeyCourtsNearby, queryHash))
}

func (kb *KeyBuilder) KeyMatchesNearby(queryHash string) string {
	return kb.BuildKey(fmt.Sprintf(KeyMatchesNearby, queryHash))
}

func (kb *KeyBuilder) KeyLocationsNearby(queryHash string) string {
	return kb.BuildKey(fmt.Sprintf(KeyLocationsNearby, queryHash))
}

// Match key builders
func (kb *KeyBuilder) KeyMatchByID(matchID int64) string {
	return kb.BuildKey(fmt.Sprintf(KeyMatchByID, matchID))
}

func (kb *KeyBuilder) KeyMatchScore(matchID int64) string {
	return kb.BuildKey(fmt.Sprintf(KeyMatchScore, matchID))
}

func (kb *KeyBuilder) KeyMatchPlayers(matchID int64) string {
	return kb.BuildKey(fmt.Sprintf(KeyMatchPlayers, matchID))
}

// Court/location key builders
func (kb *KeyBuilder) KeyCourtByID(courtID int64) string {
	return kb.BuildKey(fmt.Sprintf(KeyCourtByID, courtID))
}

func (kb *KeyBuilder) KeyLocationByID(locationID int64) string {
	return kb.BuildKey(fmt.Sprintf(KeyLocationByID, locationID))
}
