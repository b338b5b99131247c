package cache

import "fmt"

// RateLimitKey builds the counter key for one client on one route group.
func RateLimitKey(group, clientIP string) string {
	return fmt.Sprintf("echoquiz:ratelimit:%s:%s", group, clientIP)
}
