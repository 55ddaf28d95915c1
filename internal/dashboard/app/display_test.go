package app

import (
	"strings"
	"testing"

	"github.com/aussiebroadwan/fireme/pkg/notify"
	"github.com/aussiebroadwan/fireme/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestDisplayFlush(t *testing.T) {
	t.Parallel()

	notices := notify.New(notify.WithLogger(slogx.Discard()))
	notices.Push("Campaign created", notify.SeveritySuccess)
	notices.Push("name: This field may not be blank.\nplt: Platform is required for a Campaign !", notify.SeverityError)
	notices.Push("Token expires soon", notify.SeverityWarning)

	var out strings.Builder
	d := &Display{Notices: notices, Out: &out}

	require.Equal(t, 1, d.Flush())
	require.Equal(t, 0, notices.Len())
	require.Equal(t, strings.Join([]string{
		"ok: Campaign created",
		"error: name: This field may not be blank.",
		"       plt: Platform is required for a Campaign !",
		"warning: Token expires soon",
		"",
	}, "\n"), out.String())

	out.Reset()
	require.Zero(t, d.Flush())
	require.Empty(t, out.String())
}
