package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vgfx/forge/cmd/forge/commands"
	"github.com/vgfx/forge/internal/app"
	"github.com/vgfx/forge/internal/build"
)

type mockApp struct {
	buildFunc func(ctx context.Context, opts app.BuildOptions) error
	cleanFunc func(ctx context.Context, manifestPath string) error
	watchFunc func(ctx context.Context, opts app.BuildOptions) error
}

func (m *mockApp) Build(ctx context.Context, opts app.BuildOptions) error {
	if m.buildFunc != nil {
		return m.buildFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Clean(ctx context.Context, manifestPath string) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx, manifestPath)
	}
	return nil
}

func (m *mockApp) Watch(ctx context.Context, opts app.BuildOptions) error {
	if m.watchFunc != nil {
		return m.watchFunc(ctx, opts)
	}
	return nil
}

func TestCommands_DefaultActionIsBuild(t *testing.T) {
	called := false
	var capturedOpts app.BuildOptions

	mock := &mockApp{
		buildFunc: func(_ context.Context, opts app.BuildOptions) error {
			called = true
			capturedOpts = opts
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{})
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, called, "bare invocation must build everything")
	assert.Equal(t, "shaders.yaml", capturedOpts.Manifest)
	assert.Equal(t, 0, capturedOpts.Jobs)
	assert.False(t, capturedOpts.Force)
}

func TestCommands_Build_WiresFlags(t *testing.T) {
	var capturedOpts app.BuildOptions

	mock := &mockApp{
		buildFunc: func(_ context.Context, opts app.BuildOptions) error {
			capturedOpts = opts
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"build", "-m", "shaders/shaders.yaml", "-j", "4", "--force"})
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "shaders/shaders.yaml", capturedOpts.Manifest)
	assert.Equal(t, 4, capturedOpts.Jobs)
	assert.True(t, capturedOpts.Force)
}

func TestCommands_Build_PropagatesError(t *testing.T) {
	simulated := errors.New("simulated error")
	mock := &mockApp{
		buildFunc: func(_ context.Context, _ app.BuildOptions) error {
			return simulated
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"build"})
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

	err := cli.Execute(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, simulated))
}

func TestCommands_Clean(t *testing.T) {
	var capturedManifest string
	mock := &mockApp{
		cleanFunc: func(_ context.Context, manifestPath string) error {
			capturedManifest = manifestPath
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"clean", "--manifest", "custom.yaml"})
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "custom.yaml", capturedManifest)
}

func TestCommands_Watch(t *testing.T) {
	called := false
	mock := &mockApp{
		watchFunc: func(_ context.Context, _ app.BuildOptions) error {
			called = true
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"watch"})
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, called)
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{})
	out := new(bytes.Buffer)
	cli.SetOutput(out, new(bytes.Buffer))
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, out.String(), "forge version "+build.Version)
}

func TestCommands_UnknownCommand(t *testing.T) {
	cli := commands.New(&mockApp{})
	cli.SetArgs([]string{"frobnicate"})
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

	require.Error(t, cli.Execute(context.Background()))
}
