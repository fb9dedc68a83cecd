package stream

import (
	"strconv"

	"github.com/aws/aws-lambda-go/events"
)

// getStringAttr extracts a string attribute from a stream image, returning
// "" when absent or the wrong type.
func getStringAttr(image map[string]events.DynamoDBAttributeValue, key string) string {
	v, ok := image[key]
	if !ok || v.DataType() != events.DataTypeString {
		return ""
	}
	return v.String()
}

// getNumberAttr extracts a numeric attribute from a stream image, returning
// 0 when absent, the wrong type, or unparseable.
func getNumberAttr(image map[string]events.DynamoDBAttributeValue, key string) int64 {
	v, ok := image[key]
	if !ok || v.DataType() != events.DataTypeNumber {
		return 0
	}
	n, err := strconv.ParseInt(v.Number(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
