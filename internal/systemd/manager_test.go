package systemd

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeSystem struct {
	runs      []string
	runErr    error
	output    string
	outputErr error
}

func (f *fakeSystem) Run(_ context.Context, name string, args ...string) error {
	f.runs = append(f.runs, name+" "+strings.Join(args, " "))
	return f.runErr
}

func (f *fakeSystem) Output(_ context.Context, name string, args ...string) (string, error) {
	f.runs = append(f.runs, name+" "+strings.Join(args, " "))
	return f.output, f.outputErr
}

func TestManagerLifecycleCommands(t *testing.T) {
	sys := &fakeSystem{}
	mgr := NewManager(sys)
	ctx := context.Background()

	require.NoError(t, mgr.DaemonReload(ctx))
	require.NoError(t, mgr.Enable(ctx, "node_exporter.service"))
	require.NoError(t, mgr.Start(ctx, "node_exporter.service"))
	require.NoError(t, mgr.Stop(ctx, "node_exporter.service"))

	require.Equal(t, []string{
		"systemctl daemon-reload",
		"systemctl enable node_exporter.service",
		"systemctl start node_exporter.service",
		"systemctl stop node_exporter.service",
	}, sys.runs)
}

func TestIsActive(t *testing.T) {
	sys := &fakeSystem{}
	mgr := NewManager(sys)
	require.True(t, mgr.IsActive(context.Background(), "x.service"))

	sys.runErr = errors.New("exit status 3")
	require.False(t, mgr.IsActive(context.Background(), "x.service"))
}

func TestActiveState(t *testing.T) {
	sys := &fakeSystem{output: "active\n"}
	mgr := NewManager(sys)

	state, err := mgr.ActiveState(context.Background(), "x.service")
	require.NoError(t, err)
	require.Equal(t, "active", state)
	require.Equal(t, []string{"systemctl show --property ActiveState --value x.service"}, sys.runs)
}

func TestActiveStateError(t *testing.T) {
	sys := &fakeSystem{outputErr: errors.New("boom")}
	mgr := NewManager(sys)

	_, err := mgr.ActiveState(context.Background(), "x.service")
	require.Error(t, err)
}
