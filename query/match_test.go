package query

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/accio/value"
)

func mustParse(t *testing.T, s string) value.Value {
	t.Helper()
	v, err := value.ParseString(s)
	require.NoError(t, err)
	return v
}

func TestMatch_Literals(t *testing.T) {
	item := mustParse(t, `{"name": "accio", "count": 3, "ok": true, "zero": 0, "off": false, "empty": ""}`)

	tests := []struct {
		name string
		spec Spec
		want bool
	}{
		{"string equal", Spec{"name": Eq("accio")}, true},
		{"query string is trimmed", Spec{"name": Eq("  accio\t")}, true},
		{"data string is not trimmed", Spec{"name": Eq("acc")}, false},
		{"number equal", Spec{"count": Eq(3)}, true},
		{"number differs", Spec{"count": Eq(3.5)}, false},
		{"number vs string", Spec{"count": Eq("3")}, false},
		{"bool equal", Spec{"ok": Eq(true)}, true},
		{"bool differs", Spec{"ok": Eq(false)}, false},
		{"and across fields", Spec{"name": Eq("accio"), "count": Eq(3)}, true},
		{"one field fails", Spec{"name": Eq("accio"), "count": Eq(4)}, false},
		{"missing field", Spec{"nope": Eq("x")}, false},
		{"zero never matches", Spec{"zero": Eq(0)}, false},
		{"false never matches", Spec{"off": Eq(false)}, false},
		{"empty string never matches", Spec{"empty": Eq("")}, false},
		{"unsupported literal", Spec{"name": Eq([]string{"accio"})}, false},
		{"null literal", Spec{"name": Eq(nil)}, false},
		{"empty spec", Spec{}, false},
		{"nil spec", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(item, tt.spec))
		})
	}
}

func TestMatch_FieldTypes(t *testing.T) {
	tests := []struct {
		name  string
		field string
		types []FieldType
		want  bool
	}{
		{"string", `"hello"`, []FieldType{String}, true},
		{"string is not number", `"hello"`, []FieldType{Number}, false},
		{"number", `4.4`, []FieldType{Number}, true},
		{"boolean", `true`, []FieldType{Boolean}, true},
		{"array", `[1]`, []FieldType{Array}, true},
		{"empty array", `[]`, []FieldType{Array}, true},
		{"object", `{"a": 1}`, []FieldType{Object}, true},
		{"empty object", `{}`, []FieldType{Object}, true},
		{"array is not object", `[1]`, []FieldType{Object}, false},
		{"object is not array", `{}`, []FieldType{Array}, false},
		{"date string", `"2021-09-10T00:57:00.474Z"`, []FieldType{Date}, true},
		{"plain string is not a date", `"some string"`, []FieldType{Date}, false},
		{"plain string is not_date", `"some string"`, []FieldType{NotDate}, true},
		{"date string is not not_date", `"2021-09-10T00:57:00.474Z"`, []FieldType{NotDate}, false},
		{"any tag passes", `"some string"`, []FieldType{Number, String}, true},
		{"no tag passes", `"some string"`, []FieldType{Number, Boolean}, false},
		{"unknown tag", `"some string"`, []FieldType{Unknown}, false},
		{"unknown tag does not block others", `"some string"`, []FieldType{Unknown, String}, true},
		{"zero with number tag", `0`, []FieldType{Number}, false},
		{"false with boolean tag", `false`, []FieldType{Boolean}, false},
		{"null with not_date tag", `null`, []FieldType{NotDate}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := mustParse(t, `{"f": `+tt.field+`}`)
			assert.Equal(t, tt.want, Match(item, Spec{"f": Is(tt.types...)}))
		})
	}
}

func TestMatch_NonComposite(t *testing.T) {
	spec := Spec{"0": Is(String)}

	assert.False(t, Match(value.String("abc"), spec))
	assert.False(t, Match(value.Number(1), spec))
	assert.False(t, Match(value.Null(), spec))
	assert.False(t, Match(value.Undefined(), spec))
}

func TestMatch_ArrayItemsUseIndexes(t *testing.T) {
	item := mustParse(t, `["a", "b"]`)

	assert.True(t, Match(item, Spec{"1": Eq("b")}))
	assert.False(t, Match(item, Spec{"2": Is(String)}))
}

func TestIsAll(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  bool
	}{
		{"plain string", `"some string"`, true},
		{"date string", `"2021-09-10T00:57:00.474Z"`, false},
		{"object", `{}`, false},
		{"number", `4.4`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := mustParse(t, `{"f": `+tt.field+`}`)
			assert.Equal(t, tt.want, Match(item, Spec{"f": IsAll(String, NotDate)}))
		})
	}

	assert.False(t, IsAll().Valid())
	assert.Equal(t, "is all string&not_date", IsAll(String, NotDate).String())
	assert.Equal(t, []FieldType{String, NotDate}, IsAll(String, NotDate).Types())
}

func TestIs_WithoutTypes(t *testing.T) {
	cond := Is()
	assert.False(t, cond.Valid())
	assert.False(t, Match(mustParse(t, `{"a": 1}`), Spec{"a": cond}))
}

func TestMatchesTag(t *testing.T) {
	assert.True(t, MatchesTag(value.Object(), Object))
	assert.True(t, MatchesTag(value.Bool(false), Boolean))
	assert.True(t, MatchesTag(value.Number(0), Number))
	assert.True(t, MatchesTag(value.Number(0), Date), "numbers are epoch milliseconds")
	assert.False(t, MatchesTag(value.Number(9e15), Date))
	assert.False(t, MatchesTag(value.Number(math.NaN()), Date))
	assert.True(t, MatchesTag(value.Bool(true), NotDate))
	assert.True(t, MatchesTag(value.Object(), NotDate))
	assert.False(t, MatchesTag(value.String("x"), FieldType(99)))
}

func TestParseDate(t *testing.T) {
	valid := []string{
		"2021-09-10T00:57:00.474Z",
		"2021-09-10T00:57:00Z",
		"2021-09-10T00:57:00+02:00",
		"2021-09-10T00:57Z",
		"2021-09-10T00:57:00",
		"2021-09-10T00:57:00.123",
		"2021-09-10T00:57:00+0200",
		"2021-09-10",
		"2021-09",
		"2021",
		"2021-09-10 00:57:00",
		"2021-09-10 00:57",
		"2021/9/10",
		"Fri, 10 Sep 2021 00:57:00 GMT",
		"Fri, 10 Sep 2021 00:57:00 +0000",
		"Sep 10, 2021",
		"September 10, 2021",
		"10 Sep 2021",
		"  2021-09-10  ",
	}
	for _, s := range valid {
		t.Run(s, func(t *testing.T) {
			_, ok := ParseDate(s)
			assert.True(t, ok)
		})
	}

	invalid := []string{
		"",
		"some string",
		"Nested 3 deep",
		"2021-02-30",
		"2021-13-01",
		"2021-09-10T25:00:00Z",
		"10/09",
		"true",
	}
	for _, s := range invalid {
		t.Run("invalid "+s, func(t *testing.T) {
			_, ok := ParseDate(s)
			assert.False(t, ok)
		})
	}
}

func TestParseFieldType(t *testing.T) {
	tests := map[string]FieldType{
		"array":    Array,
		"Boolean":  Boolean,
		"bool":     Boolean,
		"date":     Date,
		" object ": Object,
		"NUMBER":   Number,
		"string":   String,
		"not_date": NotDate,
		"not-date": NotDate,
		"notdate":  NotDate,
		"integer":  Unknown,
		"":         Unknown,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseFieldType(in), "ParseFieldType(%q)", in)
	}

	assert.Equal(t, "not_date", NotDate.String())
	assert.Equal(t, "unknown(0)", Unknown.String())
	assert.Equal(t, Types.Date, Date)
}

func TestFieldType_Text(t *testing.T) {
	var ft FieldType
	require.NoError(t, ft.UnmarshalText([]byte("date")))
	assert.Equal(t, Date, ft)

	text, err := NotDate.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "not_date", string(text))
}

func TestSpec_String(t *testing.T) {
	spec := Spec{
		"b": Is(String, NotDate),
		"a": Eq("x"),
		"c": Eq(nil),
	}
	assert.Equal(t, []string{"a", "b", "c"}, spec.Fields())
	assert.Equal(t, `{a = "x", b is string|not_date, c invalid}`, spec.String())
}

func TestCondition_Accessors(t *testing.T) {
	lit, ok := Eq(2).Literal()
	require.True(t, ok)
	assert.Equal(t, value.Number(2), lit)

	_, ok = Is(String).Literal()
	assert.False(t, ok)
	assert.Equal(t, []FieldType{String}, Is(String).Types())
	assert.Nil(t, Eq(1).Types())
}
