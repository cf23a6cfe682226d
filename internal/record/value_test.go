package record

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const filing = `{
  "filing_uuid": "a1",
  "filing_year": 2024,
  "income": "1,500.00",
  "registrant": {"id": 17, "name": "Acme Lobbying", "state": null},
  "client": null,
  "lobbying_activities": [{"general_issue_code": "HCR"}, {"general_issue_code": "TAX"}]
}`

func mustParse(t *testing.T, s string) Value {
	t.Helper()
	v, err := Parse([]byte(s))
	require.NoError(t, err)
	return v
}

func TestValue_Accessors(t *testing.T) {
	v := mustParse(t, filing)

	uuid, ok := v.Get("filing_uuid").AsString()
	assert.True(t, ok)
	assert.Equal(t, "a1", uuid)

	year, ok := v.Get("filing_year").Int()
	assert.True(t, ok)
	assert.Equal(t, int64(2024), year)

	id := v.Path("registrant", "id").IntPtr()
	require.NotNil(t, id)
	assert.Equal(t, int64(17), *id)

	assert.True(t, v.Path("registrant", "state").Present())
	assert.True(t, v.Path("registrant", "state").IsNull())
	assert.Nil(t, v.Path("registrant", "state").StringPtr())

	assert.Len(t, v.Get("lobbying_activities").List(), 2)
}

func TestValue_AbsentNeverFaults(t *testing.T) {
	v := mustParse(t, filing)

	assert.False(t, v.Path("client", "name").Present())
	assert.False(t, v.Path("nope", "deeper", "still").Present())
	assert.Nil(t, v.Get("client").Get("name").StringPtr())
	assert.Empty(t, v.Get("government_entities").List())
	assert.Empty(t, Absent.List())

	_, ok := v.Get("registrant").Int()
	assert.False(t, ok)

	// a string is not an object
	assert.False(t, v.Get("filing_uuid").Get("x").Present())
}

func TestValue_Text(t *testing.T) {
	v := mustParse(t, `{"a": "12.5", "b": 12.50, "c": true}`)

	s, ok := v.Get("a").Text()
	assert.True(t, ok)
	assert.Equal(t, "12.5", s)

	s, ok = v.Get("b").Text()
	assert.True(t, ok)
	assert.Equal(t, "12.50", s)

	_, ok = v.Get("c").Text()
	assert.False(t, ok)
}

func TestValue_IntRejectsFractions(t *testing.T) {
	v := mustParse(t, `{"a": 1.5}`)
	_, ok := v.Get("a").Int()
	assert.False(t, ok)
}

func TestParseAll(t *testing.T) {
	raws := []json.RawMessage{json.RawMessage(`{"n":1}`), json.RawMessage(`{"n":2}`)}
	values, err := ParseAll(raws)
	require.NoError(t, err)
	require.Len(t, values, 2)

	n, _ := values[1].Get("n").Int()
	assert.Equal(t, int64(2), n)

	_, err = ParseAll([]json.RawMessage{json.RawMessage(`{`)})
	assert.Error(t, err)
}
