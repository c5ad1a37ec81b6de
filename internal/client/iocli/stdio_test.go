package iocli

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipeStdio подставляет pipe вместо stdin и буфер вместо stdout
func pipeStdio(t *testing.T, input string) (*Stdio, *bytes.Buffer) {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	// Пишем в pipe в отдельной горутине, имитируя ввод пользователя
	go func() {
		_, _ = w.Write([]byte(input))
		_ = w.Close()
	}()

	out := &bytes.Buffer{}
	return newStdio(r, out), out
}

// Проверяем что NewStdio возвращает валидный объект
func TestNewStdio(t *testing.T) {
	stdio := NewStdio()
	assert.NotNil(t, stdio)
}

func TestPrintlnPrintfWrite(t *testing.T) {
	stdio, out := pipeStdio(t, "")

	stdio.Println("hello", "world")
	stdio.Printf("test %d %s\n", 1, "abc")
	_, err := stdio.Write([]byte("raw"))
	require.NoError(t, err)

	assert.Equal(t, "hello world\ntest 1 abc\nraw", out.String())
}

// Несколько подсказок подряд читают из одного буфера
func TestReadInput_Sequential(t *testing.T) {
	stdio, out := pipeStdio(t, "alice\n  alice@example.com  \nlast-without-newline")

	first, err := stdio.ReadInput("Username: ")
	require.NoError(t, err)
	second, err := stdio.ReadInput("Email: ")
	require.NoError(t, err)
	third, err := stdio.ReadInput("Name: ")
	require.NoError(t, err)

	assert.Equal(t, "alice", first)
	assert.Equal(t, "alice@example.com", second)
	assert.Equal(t, "last-without-newline", third)
	assert.Equal(t, "Username: Email: Name: ", out.String())

	_, err = stdio.ReadInput("More: ")
	assert.Error(t, err)
}

// Pipe не терминал: пароль читается как обычная строка
func TestReadPassword_NotTerminal(t *testing.T) {
	stdio, _ := pipeStdio(t, "secret123\n")

	password, err := stdio.ReadPassword("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "secret123", password)
}
