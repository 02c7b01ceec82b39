package download

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_RoundTrip(t *testing.T) {
	iss, err := NewIssuer("secret", 10*time.Minute)
	require.NoError(t, err)

	token, exp, err := iss.Issue(1834567890123456789, "u-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), exp, time.Second)

	ticket, err := iss.Open(token)
	require.NoError(t, err)
	assert.Equal(t, int64(1834567890123456789), ticket.RobotId)
	assert.Equal(t, "u-1", ticket.UserId)
}

func TestIssuer_Rejects(t *testing.T) {
	iss, err := NewIssuer("secret", time.Minute)
	require.NoError(t, err)
	token, _, err := iss.Issue(1, "u-1")
	require.NoError(t, err)

	tampered := []byte(token)
	if tampered[10] == 'A' {
		tampered[10] = 'B'
	} else {
		tampered[10] = 'A'
	}
	_, err = iss.Open(string(tampered))
	assert.ErrorIs(t, err, ErrTicketInvalid)

	_, err = iss.Open("not base64!")
	assert.ErrorIs(t, err, ErrTicketInvalid)

	other, _ := NewIssuer("another", time.Minute)
	_, err = other.Open(token)
	assert.ErrorIs(t, err, ErrTicketInvalid)

	iss.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = iss.Open(token)
	assert.ErrorIs(t, err, ErrTicketExpired)
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "scalper.ex5"), []byte("robot"), 0o644))

	p, err := Resolve(root, "scalper.ex5")
	require.NoError(t, err)
	assert.Equal(t, int64(5), SizeOf(p))

	p, err = Resolve(root, "../../etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "etc", "passwd"), p)

	require.NoError(t, os.WriteFile(filepath.Join(root, "..v2.ex4"), []byte("v2"), 0o644))
	p, err = Resolve(root, "..v2.ex4")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "..v2.ex4"), p)
	assert.Equal(t, int64(2), SizeOf(p))

	p, err = Resolve(root, "../x")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "x"), p)

	_, err = Resolve(root, "")
	assert.ErrorIs(t, err, ErrBadPath)
	_, err = Resolve("", "x")
	assert.ErrorIs(t, err, ErrBadPath)
	_, err = Resolve(root, "/")
	assert.ErrorIs(t, err, ErrBadPath)

	assert.Zero(t, SizeOf(filepath.Join(root, "missing")))
	assert.Zero(t, SizeOf(root))
}
