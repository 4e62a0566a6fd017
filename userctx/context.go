package userctx

import "context"

// Context key type
type contextKey string

const accountIDKey contextKey = "account_id"
const userEmailKey contextKey = "user_email"

// SetAccountID adds the account ID to request context
func SetAccountID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, accountIDKey, id)
}

// GetAccountID retrieves the account ID from request context
func GetAccountID(ctx context.Context) int {
	if id, ok := ctx.Value(accountIDKey).(int); ok {
		return id
	}
	return 0
}

// SetUserEmail adds user email to request context
func SetUserEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, userEmailKey, email)
}

// GetUserEmail retrieves user email from request context
func GetUserEmail(ctx context.Context) string {
	email, ok := ctx.Value(userEmailKey).(string)
	if !ok {
		return "anonymous"
	}
	return email
}
