package orm_test

import (
	"testing"

	"github.com/aretw0/arbor/pkg/orm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     orm.Config
		wantErr string
	}{
		{"missing id", orm.Config{Driver: "sqlite3", DSN: "file:x"}, "factory id"},
		{"missing driver", orm.Config{FactoryID: "a", DSN: "file:x"}, "driver is required"},
		{"missing dsn", orm.Config{FactoryID: "a", Driver: "sqlite3"}, "dsn is required"},
		{"complete", orm.Config{FactoryID: "a", Driver: "sqlite3", DSN: "file:x"}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestParseFlushMode(t *testing.T) {
	cases := []struct {
		in   string
		want orm.FlushMode
	}{
		{"", orm.FlushAuto},
		{"auto", orm.FlushAuto},
		{"AUTO", orm.FlushAuto},
		{"commit", orm.FlushCommit},
		{"manual", orm.FlushManual},
		{"never", orm.FlushManual},
		{" always ", orm.FlushAlways},
	}

	for _, tc := range cases {
		got, err := orm.ParseFlushMode(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseFlushMode_Unknown(t *testing.T) {
	_, err := orm.ParseFlushMode("sometimes")
	require.Error(t, err)

	var unknown *orm.UnknownFlushModeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "sometimes", unknown.Value)
}

func TestNewFactory_UnknownDriver(t *testing.T) {
	_, err := orm.NewFactory(&orm.Config{FactoryID: "a", Driver: "no-such-driver", DSN: "x"})
	assert.Error(t, err)
}
