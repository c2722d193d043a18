package pack

import (
	"archive/tar"
	"bytes"
	"errors"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tgz(t *testing.T, entries ...Entry) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteEntries(&buf, entries...))
	return buf.Bytes()
}

func TestWalkStreamOrder(t *testing.T) {
	data := tgz(t,
		Entry{Name: "package/b.js", Body: []byte("b")},
		Entry{Name: "package/a.js", Body: []byte("a")},
	)

	var names []string
	err := Walk(bytes.NewReader(data), func(hdr *tar.Header, _ io.Reader) error {
		names = append(names, hdr.Name)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"package/b.js", "package/a.js"}, names)
}

func TestWalkStop(t *testing.T) {
	data := tgz(t,
		Entry{Name: "a"}, Entry{Name: "b"}, Entry{Name: "c"},
	)

	seen := 0
	err := Walk(bytes.NewReader(data), func(*tar.Header, io.Reader) error {
		seen++
		if seen == 2 {
			return ErrStop
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, seen)
}

func TestWalkCallbackError(t *testing.T) {
	data := tgz(t, Entry{Name: "a"})
	boom := errors.New("boom")
	err := Walk(bytes.NewReader(data), func(*tar.Header, io.Reader) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestWalkNotGzip(t *testing.T) {
	err := Walk(bytes.NewReader([]byte("definitely not gzip")), func(*tar.Header, io.Reader) error {
		return nil
	})
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "gzip", fe.Layer)
}

func TestWalkEmptyInput(t *testing.T) {
	err := Walk(bytes.NewReader(nil), func(*tar.Header, io.Reader) error {
		return nil
	})
	var fe *FormatError
	assert.ErrorAs(t, err, &fe)
}

func TestWalkTruncated(t *testing.T) {
	noise := make([]byte, 8192)
	rand.New(rand.NewSource(1)).Read(noise)
	data := tgz(t, Entry{Name: "package/package.json", Body: noise})
	truncated := data[:len(data)/2]

	err := Walk(bytes.NewReader(truncated), func(_ *tar.Header, body io.Reader) error {
		_, err := ReadBody(body)
		return err
	})
	var fe *FormatError
	assert.ErrorAs(t, err, &fe)
}

func TestUnpackTar(t *testing.T) {
	src := t.TempDir()
	makeTree(t, src, map[string]string{
		"package.json": `{"name":"x"}`,
		"lib/a.js":     "a",
	})
	var buf bytes.Buffer
	_, err := PackTar(src, DefaultPrefix, []string{"package.json", "lib/a.js"}, &buf)
	require.NoError(t, err)

	dst := t.TempDir()
	n, err := UnpackTar(bytes.NewReader(buf.Bytes()), dst, true)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := os.ReadFile(filepath.Join(dst, "lib", "a.js"))
	require.NoError(t, err)
	assert.Equal(t, "a", string(got))
	_, err = os.Stat(filepath.Join(dst, "package"))
	assert.True(t, os.IsNotExist(err))
}

func TestUnpackTarKeepRoot(t *testing.T) {
	data := tgz(t, Entry{Name: "package/package.json", Body: []byte("{}")})
	dst := t.TempDir()
	n, err := UnpackTar(bytes.NewReader(data), dst, false)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.FileExists(t, filepath.Join(dst, "package", "package.json"))
}

func TestUnpackTarRejectsTraversal(t *testing.T) {
	data := tgz(t, Entry{Name: "../evil.sh", Body: []byte("rm -rf /")})
	dst := filepath.Join(t.TempDir(), "out")
	_, err := UnpackTar(bytes.NewReader(data), dst, false)
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(dst), "evil.sh"))
}

func TestUnpackTarCorrupt(t *testing.T) {
	_, err := UnpackTar(bytes.NewReader([]byte{0x1f, 0x8b, 0, 0}), t.TempDir(), false)
	var fe *FormatError
	assert.ErrorAs(t, err, &fe)
}
