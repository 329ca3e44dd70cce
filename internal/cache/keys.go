package cache

import (
	"strconv"
	"strings"
)

const (
	GlobalKeyPrefix = "wikiquiz"

	quizServiceName  = "quiz"
	detailObjectType = "detail"
)

// GenerateCacheKey joins the global prefix, service, object type and
// identifier with ":".
func GenerateCacheKey(serviceName, objectType, identifier string) string {
	return strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
}

// QuizDetailKey is the key under which a stored quiz record is cached.
func QuizDetailKey(quizID int64) string {
	return GenerateCacheKey(quizServiceName, detailObjectType, strconv.FormatInt(quizID, 10))
}
