// Package amadeus implements a client for the Amadeus self-service travel
// APIs: OAuth2 client-credentials auth, city reference-data lookup, hotel
// lists by city, and hotel sentiment ratings.
//
// The test-tier Amadeus API is slow and rate-limited, so city codes and
// hotel lists are cached in-process with generous TTLs. The OAuth token is
// cached until shortly before its expiry and refreshed under a mutex so
// concurrent requests share one refresh.
package amadeus
