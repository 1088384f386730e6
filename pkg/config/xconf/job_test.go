package xconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnflee/datafu/pkg/sampling/xsampling"
)

func validJob() *Job {
	j := DefaultJob()
	j.Sampling.Rate = "0.1"
	j.Input.Schema = "user_id:chararray,visits:int"
	return j
}

func TestJob_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Job)
		ok     bool
	}{
		{"valid", func(*Job) {}, true},
		{"rate_out_of_range_is_valid", func(j *Job) { j.Sampling.Rate = "1.5" }, true},
		{"header_without_schema", func(j *Job) { j.Input.Schema = ""; j.Input.Header = true }, true},
		{"jsonl", func(j *Job) { j.Input.Format = InputJSONL }, true},
		{"tab_delimiter", func(j *Job) { j.Input.Delimiter = `\t` }, true},
		{"salts_any", func(j *Job) { j.Sampling.Salts = []string{"a", "b"}; j.Sampling.Mode = "any" }, true},
		{"bad_mode", func(j *Job) { j.Sampling.Mode = "xor" }, false},
		{"missing_rate", func(j *Job) { j.Sampling.Rate = " " }, false},
		{"bad_rate", func(j *Job) { j.Sampling.Rate = "ten percent" }, false},
		{"nan_rate", func(j *Job) { j.Sampling.Rate = "NaN" }, false},
		{"bad_format", func(j *Job) { j.Input.Format = "parquet" }, false},
		{"jsonl_header", func(j *Job) { j.Input.Format = InputJSONL; j.Input.Header = true }, false},
		{"long_delimiter", func(j *Job) { j.Input.Delimiter = ";;" }, false},
		{"quote_delimiter", func(j *Job) { j.Input.Delimiter = `"` }, false},
		{"no_schema", func(j *Job) { j.Input.Schema = "" }, false},
		{"bad_schema", func(j *Job) { j.Input.Schema = "a:decimal" }, false},
		{"unknown_key_field", func(j *Job) { j.Sampling.KeyFields = []string{"email"} }, false},
		{"zero_workers", func(j *Job) { j.Workers = 0 }, false},
		{"bad_level", func(j *Job) { j.Log.Level = "loud" }, false},
		{"bad_log_format", func(j *Job) { j.Log.Format = "xml" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := validJob()
			tt.mutate(j)
			err := j.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidJob)
		})
	}
}

func TestJob_Warnings(t *testing.T) {
	j := validJob()
	assert.Empty(t, j.Warnings())

	j.Sampling.Rate = "-0.5"
	assert.Equal(t, []string{"sampling.rate -0.5 is outside [0,1]"}, j.Warnings())
}

func TestJob_Predicate(t *testing.T) {
	j := validJob()
	j.Sampling.Rate = "0.5"

	single, err := j.Predicate()
	require.NoError(t, err)
	ks, ok := single.(*xsampling.KeySampler)
	require.True(t, ok, "%T", single)
	assert.Equal(t, xsampling.DefaultSalt, ks.Salt())

	// 同一盐值重复两次：all 与 any 都等于单个样本
	j.Sampling.Salts = []string{xsampling.DefaultSalt, xsampling.DefaultSalt}
	for _, mode := range []string{"all", "any"} {
		j.Sampling.Mode = mode
		p, err := j.Predicate()
		require.NoError(t, err)
		cs, ok := p.(*xsampling.CompositeSampler)
		require.True(t, ok, "%T", p)
		assert.Len(t, cs.Members(), 2)
		assert.Equal(t, mode, cs.Mode().String())

		for key, want := range map[string]bool{"A": false, "B": true} {
			got, err := p.Evaluate(key)
			require.NoError(t, err)
			assert.Equal(t, want, got, "%s/%s", mode, key)
		}
	}

	j.Sampling.Mode = "xor"
	_, err = j.Predicate()
	assert.ErrorIs(t, err, ErrInvalidJob)
}

func TestJob_SaltList(t *testing.T) {
	j := validJob()
	assert.Equal(t, []string{xsampling.DefaultSalt}, j.SaltList())

	j.Sampling.Salts = []string{"a", ""}
	assert.Equal(t, []string{"a", ""}, j.SaltList())
	assert.Contains(t, j.Warnings(), "sampling.salt is empty")
}

func TestJob_KeyIndexes(t *testing.T) {
	j := validJob()
	schema, err := j.Schema()
	require.NoError(t, err)

	idx, err := j.KeyIndexes(schema)
	require.NoError(t, err)
	assert.Nil(t, idx)

	j.Sampling.KeyFields = []string{"visits", "user_id"}
	idx, err = j.KeyIndexes(schema)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, idx)

	_, err = j.KeyIndexes(nil)
	assert.ErrorIs(t, err, ErrInvalidJob)
}

func TestJob_Schema(t *testing.T) {
	j := validJob()
	j.Input.Schema = ""
	s, err := j.Schema()
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestJob_Delimiter(t *testing.T) {
	for in, want := range map[string]rune{"": ',', ";": ';', "tab": '\t', `\t`: '\t', "|": '|', "\t": '\t'} {
		j := validJob()
		j.Input.Delimiter = in
		got, err := j.Delimiter()
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
