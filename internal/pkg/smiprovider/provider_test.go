/*
 * Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package smiprovider

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	osexec "os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mockexec "github.com/NVIDIA/mgpus/internal/mocks/pkg/exec"
	mockos "github.com/NVIDIA/mgpus/internal/mocks/pkg/os"
	"github.com/NVIDIA/mgpus/internal/pkg/deviceinfo"
)

const (
	smiPath = "/usr/bin/nvidia-smi"
	uuid0   = "GPU-0c5b8b2e-6a1f-4f7e-9f2b-000000000000"
	uuid1   = "GPU-0c5b8b2e-6a1f-4f7e-9f2b-111111111111"
)

func expectQuery(ctrl *gomock.Controller, e *mockexec.MockExec, query string, out []byte, err error) {
	cmd := mockexec.NewMockCmd(ctrl)
	cmd.EXPECT().Output().Return(out, err)
	e.EXPECT().Command(gomock.Eq(smiPath), gomock.Eq(query), gomock.Eq(csvFormat)).Return(cmd)
}

func newTestProvider(t *testing.T) (*gomock.Controller, *mockexec.MockExec, *smiProvider) {
	t.Helper()
	ctrl := gomock.NewController(t)
	e := mockexec.NewMockExec(ctrl)
	return ctrl, e, &smiProvider{exec: e, binaryPath: smiPath}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		binaryPath string
		hook       func(*mockexec.MockExec, *mockos.MockOS)
		want       string
		wantErr    bool
	}{
		{
			name: "When nvidia-smi is in PATH",
			hook: func(e *mockexec.MockExec, _ *mockos.MockOS) {
				e.EXPECT().LookPath(gomock.Eq("nvidia-smi")).Return("/opt/bin/nvidia-smi", nil)
			},
			want: "/opt/bin/nvidia-smi",
		},
		{
			name: "When nvidia-smi is only in a fallback location",
			hook: func(e *mockexec.MockExec, o *mockos.MockOS) {
				e.EXPECT().LookPath(gomock.Eq("nvidia-smi")).Return("", osexec.ErrNotFound)
				o.EXPECT().Stat(gomock.Eq("/usr/bin/nvidia-smi")).Return(nil, fs.ErrNotExist)
				o.EXPECT().Stat(gomock.Eq("/usr/local/bin/nvidia-smi")).Return(nil, nil)
			},
			want: "/usr/local/bin/nvidia-smi",
		},
		{
			name: "When nvidia-smi can not be found",
			hook: func(e *mockexec.MockExec, o *mockos.MockOS) {
				e.EXPECT().LookPath(gomock.Eq("nvidia-smi")).Return("", osexec.ErrNotFound)
				o.EXPECT().Stat(gomock.Any()).Return(nil, fs.ErrNotExist).Times(2)
			},
			wantErr: true,
		},
		{
			name:       "When an explicit path exists",
			binaryPath: "/custom/nvidia-smi",
			hook: func(_ *mockexec.MockExec, o *mockos.MockOS) {
				o.EXPECT().Stat(gomock.Eq("/custom/nvidia-smi")).Return(nil, nil)
			},
			want: "/custom/nvidia-smi",
		},
		{
			name:       "When an explicit path does not exist",
			binaryPath: "/custom/nvidia-smi",
			hook: func(_ *mockexec.MockExec, o *mockos.MockOS) {
				o.EXPECT().Stat(gomock.Eq("/custom/nvidia-smi")).Return(nil, fs.ErrNotExist)
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			e := mockexec.NewMockExec(ctrl)
			o := mockos.NewMockOS(ctrl)
			tc.hook(e, o)

			got, err := New(tc.binaryPath, e, o)
			if tc.wantErr {
				assert.ErrorIs(t, err, deviceinfo.ErrSubsystemUnavailable)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, Backend, got.Backend())
			assert.Equal(t, tc.want, got.(*smiProvider).binaryPath)
		})
	}
}

func TestNewLogsOnlyAtDebugLevel(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))

	ctrl := gomock.NewController(t)
	e := mockexec.NewMockExec(ctrl)
	e.EXPECT().LookPath(gomock.Eq("nvidia-smi")).Return(smiPath, nil)

	_, err := New("", e, mockos.NewMockOS(ctrl))
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestListDevicesAndTotalMemory(t *testing.T) {
	ctrl, e, p := newTestProvider(t)
	expectQuery(ctrl, e, queryGPUs, []byte(
		"1, "+uuid1+", Tesla T4, 16384\n"+
			"0, "+uuid0+", NVIDIA A10, 24576\n"+
			"2, GPU-broken, NVIDIA A10, [N/A]\n"+
			"garbage\n"), nil)

	devices, err := p.ListDevices()
	require.NoError(t, err)
	assert.Equal(t, []deviceinfo.Device{
		{Index: 0, Name: "NVIDIA A10", UUID: uuid0},
		{Index: 1, Name: "Tesla T4", UUID: uuid1},
		{Index: 2, Name: "NVIDIA A10", UUID: "GPU-broken"},
	}, devices)

	total, err := p.DeviceTotalMemory(devices[0])
	require.NoError(t, err)
	assert.Equal(t, uint64(24)<<30, total)

	total, err = p.DeviceTotalMemory(devices[1])
	require.NoError(t, err)
	assert.Equal(t, uint64(16)<<30, total)

	_, err = p.DeviceTotalMemory(devices[2])
	var queryErr *deviceinfo.DeviceQueryError
	require.ErrorAs(t, err, &queryErr)
	assert.Equal(t, 2, queryErr.Index)

	_, err = p.DeviceTotalMemory(deviceinfo.Device{Index: 9})
	require.ErrorAs(t, err, &queryErr)
	assert.Equal(t, 9, queryErr.Index)
}

func TestListDevicesWhenNoDevices(t *testing.T) {
	ctrl, e, p := newTestProvider(t)
	expectQuery(ctrl, e, queryGPUs, nil, &osexec.ExitError{Stderr: []byte("No devices were found\n")})

	devices, err := p.ListDevices()
	require.NoError(t, err)
	assert.Empty(t, devices)
}

func TestListDevicesWhenNvidiaSMIFails(t *testing.T) {
	ctrl, e, p := newTestProvider(t)
	expectQuery(ctrl, e, queryGPUs, nil, &osexec.ExitError{
		Stderr: []byte("NVIDIA-SMI has failed because it couldn't communicate with the NVIDIA driver."),
	})

	_, err := p.ListDevices()
	assert.ErrorIs(t, err, deviceinfo.ErrSubsystemUnavailable)
}

func TestRunningClaims(t *testing.T) {
	ctrl, e, p := newTestProvider(t)
	expectQuery(ctrl, e, queryComputeApps, []byte(
		uuid0+", 222, 1280\n"+
			uuid0+", 111, 2560\n"+
			uuid0+", 333, [N/A]\n"+
			uuid0+", notapid, 10\n"), nil)

	claims, err := p.RunningClaims(deviceinfo.Device{Index: 0, UUID: uuid0})
	require.NoError(t, err)
	assert.Equal(t, []deviceinfo.ProcessInfo{
		{PID: 222, UsedMemoryBytes: 1280 * bytesPerMiB},
		{PID: 111, UsedMemoryBytes: 2560 * bytesPerMiB},
		{PID: 333, UsedMemoryBytes: 0},
	}, claims)

	// The process list is queried once and shared across devices.
	claims, err = p.RunningClaims(deviceinfo.Device{Index: 1, UUID: uuid1})
	require.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Empty(t, claims)

	_, err = p.RunningClaims(deviceinfo.Device{Index: 2})
	var queryErr *deviceinfo.DeviceQueryError
	require.ErrorAs(t, err, &queryErr)
	assert.Equal(t, 2, queryErr.Index)
}

func TestRunningClaimsWhenNoProcesses(t *testing.T) {
	ctrl, e, p := newTestProvider(t)
	expectQuery(ctrl, e, queryComputeApps, nil, &osexec.ExitError{Stderr: []byte("No running processes found")})

	claims, err := p.RunningClaims(deviceinfo.Device{Index: 0, UUID: uuid0})
	require.NoError(t, err)
	assert.Empty(t, claims)
}

func TestRunningClaimsWhenQueryFails(t *testing.T) {
	ctrl, e, p := newTestProvider(t)
	expectQuery(ctrl, e, queryComputeApps, nil, errors.New("Boom!"))

	_, err := p.RunningClaims(deviceinfo.Device{Index: 0, UUID: uuid0})
	var queryErr *deviceinfo.DeviceQueryError
	require.ErrorAs(t, err, &queryErr)

	// The failure is remembered rather than retried for the next device.
	_, err = p.RunningClaims(deviceinfo.Device{Index: 1, UUID: uuid1})
	require.ErrorAs(t, err, &queryErr)
	assert.Equal(t, 1, queryErr.Index)
}
