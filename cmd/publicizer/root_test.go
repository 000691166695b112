package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/publicizer/cache"
	"github.com/viant/publicizer/metadata"
	"github.com/viant/publicizer/metadata/image"
	"github.com/viant/publicizer/version"
)

func execute(t *testing.T, args ...string) (string, error) {
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeImage(t *testing.T, location string, access metadata.TypeAttributes) []byte {
	module := metadata.NewModule("Game.dll")
	module.AddType(&metadata.Type{Namespace: "Game", Name: "Foo", Attributes: access})
	data, err := image.Write(module)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(location, data, 0644))
	return data
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"publicize", "fingerprint", "version"}, names)

	publicize, _, err := cmd.Find([]string{"publicize"})
	require.NoError(t, err)
	for _, flag := range []string{"config", "target", "output", "mask", "verbose"} {
		assert.NotNil(t, publicize.Flags().Lookup(flag), flag)
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "publicizer version "+version.Informational()+"\n", out)
}

func TestFingerprintCmd(t *testing.T) {
	dir := t.TempDir()
	maskBytes := writeImage(t, filepath.Join(dir, "mask.dll"), metadata.TypePublic)
	targetBytes := writeImage(t, filepath.Join(dir, "target.dll"), metadata.TypeNotPublic)

	out, err := execute(t, "fingerprint", filepath.Join(dir, "mask.dll"), filepath.Join(dir, "target.dll"))
	require.NoError(t, err)
	assert.Equal(t, cache.Fingerprint(version.Informational(), maskBytes, targetBytes).String(), strings.TrimSpace(out))

	_, err = execute(t, "fingerprint", filepath.Join(dir, "mask.dll"))
	assert.Error(t, err)
}

func TestPublicizeCmd(t *testing.T) {
	dir := t.TempDir()
	maskPath := filepath.Join(dir, "mask.dll")
	targetPath := filepath.Join(dir, "target.dll")
	objDir := filepath.Join(dir, "obj")
	require.NoError(t, os.MkdirAll(objDir, 0755))
	writeImage(t, maskPath, metadata.TypePublic)
	writeImage(t, targetPath, metadata.TypeNotPublic)

	out, err := execute(t, "publicize", "-t", targetPath, "-o", objDir, "-m", maskPath)
	require.NoError(t, err)
	output := strings.TrimSpace(out)
	assert.Equal(t, filepath.Join(objDir, "publicized.dll"), output)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	module, err := image.Read(data)
	require.NoError(t, err)
	assert.True(t, module.GetType("Game.Foo").IsPublic())
	_, err = os.Stat(cache.Location(output))
	assert.NoError(t, err)

	_, err = execute(t, "publicize", "-t", targetPath, "-o", objDir)
	assert.Error(t, err, "mask location is required")
}
