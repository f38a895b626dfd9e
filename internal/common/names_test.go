package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Name", "_name"},
		{"name", "_name"},
		{"URL", "_uRL"},
		{"X", "_x"},
		{"Ärger", "_ärger"},
		{"", "_"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FieldName(tt.in))
		})
	}
}

func TestQualifiedNames(t *testing.T) {
	assert.Equal(t, "JsonIgnoreAttribute", ShortName("System.Text.Json.Serialization.JsonIgnoreAttribute"))
	assert.Equal(t, "IObservable", ShortName("global::System.IObservable"))
	assert.Equal(t, "Person", ShortName("Person"))

	assert.Equal(t, "System.Text.Json.Serialization", Namespace("System.Text.Json.Serialization.JsonIgnoreAttribute"))
	assert.Equal(t, "", Namespace("Person"))

	assert.Equal(t, "Demo.Person", JoinQualified("Demo", "Person"))
	assert.Equal(t, "Person", JoinQualified("", "Person"))
}

func TestTrimAttributeSuffix(t *testing.T) {
	assert.Equal(t, "JsonIgnore", TrimAttributeSuffix("JsonIgnoreAttribute"))
	assert.Equal(t, "Attribute", TrimAttributeSuffix("Attribute"))
	assert.Equal(t, "Obsolete", TrimAttributeSuffix("Obsolete"))
}

func TestFilter(t *testing.T) {
	in := []int{5, 1, 4, 2, 3}
	out := Filter(in, func(v int) bool { return v%2 == 1 })

	assert.Equal(t, []int{5, 1, 3}, out)
	assert.Equal(t, []int{5, 1, 4, 2, 3}, in)
	assert.Nil(t, Filter([]int{2}, func(v int) bool { return v%2 == 1 }))
}
