package controllers

import "context"

// ActorEmailLookup resolves the authenticated actor's email from the user id
// seeded by the auth middleware. A lookup failure means the creator is simply
// not recorded; it never fails the request.
type ActorEmailLookup func(ctx context.Context, userID string) (string, error)
