package faking

import "github.com/go-faker/faker/v4"

// Fields builds a form field map with count distinct keys.  Values are human names so they exercise spaces once
// encoded.
func Fields(count int) map[string]string {
	keys := NewUniqueWords()
	out := make(map[string]string, count)
	for i := 0; i < count; i++ {
		out[keys.Next()] = faker.Name()
	}
	return out
}

// IntRange returns a random int in [min, max].
func IntRange(min, max int) int {
	values, err := faker.RandomInt(min, max, 1)
	if err != nil {
		panic(err)
	}
	return values[0]
}
