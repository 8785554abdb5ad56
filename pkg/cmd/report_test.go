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

package cmd

import (
	"errors"
	"io/fs"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/mock/gomock"

	mockdeviceinfo "github.com/NVIDIA/mgpus/internal/mocks/pkg/deviceinfo"
	mockprocresolver "github.com/NVIDIA/mgpus/internal/mocks/pkg/procresolver"
	"github.com/NVIDIA/mgpus/internal/pkg/appconfig"
	"github.com/NVIDIA/mgpus/internal/pkg/deviceinfo"
	"github.com/NVIDIA/mgpus/internal/pkg/procresolver"
	"github.com/NVIDIA/mgpus/internal/pkg/testutils"
)

var _ = Describe("mgpus", func() {
	var (
		ctrl     *gomock.Controller
		provider *mockdeviceinfo.MockProvider
		table    *mockprocresolver.MockProcessTable
	)

	gpu0 := deviceinfo.Device{Index: 0, Name: "NVIDIA A100", UUID: "GPU-0"}
	gpu1 := deviceinfo.Device{Index: 1, Name: "NVIDIA A10", UUID: "GPU-1"}

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		provider = mockdeviceinfo.NewMockProvider(ctrl)
		provider.EXPECT().Backend().Return("nvml").AnyTimes()
		table = mockprocresolver.NewMockProcessTable(ctrl)

		newProvider = func(*appconfig.Config) (deviceinfo.Provider, error) { return provider, nil }
		newResolver = func() procresolver.Resolver { return procresolver.NewResolver(table) }
		getHostname = func() (string, error) { return "node-a", nil }
	})

	Context("when the GPU subsystem can not be initialized", func() {
		It("should fail without writing a report", func() {
			newProvider = func(*appconfig.Config) (deviceinfo.Provider, error) {
				return nil, deviceinfo.ErrSubsystemUnavailable
			}

			stdout, _, err := runApp()
			Expect(err).Should(MatchError(deviceinfo.ErrSubsystemUnavailable))
			Expect(stdout).Should(BeEmpty())
		})
	})

	Context("when there are no GPUs", func() {
		BeforeEach(func() {
			provider.EXPECT().ListDevices().Return([]deviceinfo.Device{}, nil).AnyTimes()
			provider.EXPECT().Cleanup().AnyTimes()
		})

		It("should succeed with an empty table", func() {
			stdout, _, err := runApp("--no-color")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(stdout).Should(ContainSubstring("Memory Usage (Used/Total)"))
			Expect(stdout).ShouldNot(ContainSubstring("GPU 0"))
		})

		It("should succeed with an empty json document", func() {
			stdout, _, err := runApp("--format", "json", "--no-hostname")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(stdout).Should(MatchJSON(`{"devices": []}`))
		})

		It("should reject a selection of missing GPUs", func() {
			stdout, _, err := runApp("--devices", "0")
			Expect(err).Should(MatchError("GPU 0 is not present; found 0 GPU(s)"))
			Expect(stdout).Should(BeEmpty())
		})
	})

	Context("when two GPUs are in use", func() {
		BeforeEach(func() {
			provider.EXPECT().ListDevices().Return([]deviceinfo.Device{gpu0, gpu1}, nil).AnyTimes()
			provider.EXPECT().DeviceTotalMemory(gomock.Eq(gpu0)).Return(24*testutils.GiB, nil).AnyTimes()
			provider.EXPECT().DeviceTotalMemory(gomock.Eq(gpu1)).Return(16*testutils.GiB, nil).AnyTimes()
			provider.EXPECT().RunningClaims(gomock.Eq(gpu0)).Return([]deviceinfo.ProcessInfo{
				{PID: 111, UsedMemoryBytes: 2684354560},
				{PID: 222, UsedMemoryBytes: 1342177280},
			}, nil).AnyTimes()
			provider.EXPECT().RunningClaims(gomock.Eq(gpu1)).Return([]deviceinfo.ProcessInfo{}, nil).AnyTimes()
			provider.EXPECT().Cleanup().AnyTimes()

			table.EXPECT().Cmdline(gomock.Eq(int32(111))).Return([]string{"python", "train.py"}, nil).AnyTimes()
			table.EXPECT().Cmdline(gomock.Eq(int32(222))).Return(nil, process.ErrorProcessNotRunning).AnyTimes()
		})

		It("should render the memory table", func() {
			stdout, _, err := runApp("--no-color")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(stdout).Should(ContainSubstring("GPU 0"))
			Expect(stdout).Should(ContainSubstring("3.75 / 24.00 GB"))
			Expect(stdout).Should(ContainSubstring("python train.py (PID 111), 2.50 GB"))
			Expect(stdout).Should(ContainSubstring("Unknown (PID 222), 1.25 GB"))
			Expect(stdout).Should(ContainSubstring("GPU 1"))
			Expect(stdout).Should(ContainSubstring("0.00 / 16.00 GB"))
		})

		It("should render the plain format", func() {
			stdout, _, err := runApp("--format", "plain")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(stdout).Should(Equal(`GPU 0: 3.75 / 24.00 GB
  python train.py (PID 111), 2.50 GB
  Unknown (PID 222), 1.25 GB
GPU 1: 0.00 / 16.00 GB
`))
		})

		It("should report only the selected GPUs", func() {
			stdout, _, err := runApp("--format", "plain", "--devices", "1")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(stdout).Should(Equal("GPU 1: 0.00 / 16.00 GB\n"))
		})

		It("should label prometheus metrics with the hostname", func() {
			stdout, _, err := runApp("--format", "prometheus")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(stdout).Should(ContainSubstring(
				`mgpus_process_memory_used_bytes{gpu="0",UUID="GPU-0",modelName="NVIDIA A100",Hostname="node-a",pid="111",process="python train.py"} 2.68435456e+09`))
		})

		It("should produce identical output on every run", func() {
			for _, format := range []string{"table", "plain", "json", "prometheus"} {
				first, _, err := runApp("--no-color", "--format", format)
				Expect(err).ShouldNot(HaveOccurred())
				second, _, err := runApp("--no-color", "--format", format)
				Expect(err).ShouldNot(HaveOccurred())
				Expect(second).Should(Equal(first), "format %s", format)
			}
		})
	})

	Context("when a process can not be resolved", func() {
		DescribeTable("should report it as Unknown",
			func(resolveErr error) {
				provider.EXPECT().ListDevices().Return([]deviceinfo.Device{gpu0}, nil)
				provider.EXPECT().DeviceTotalMemory(gomock.Eq(gpu0)).Return(24*testutils.GiB, nil)
				provider.EXPECT().RunningClaims(gomock.Eq(gpu0)).Return([]deviceinfo.ProcessInfo{
					{PID: 333, UsedMemoryBytes: testutils.GiB},
				}, nil)
				provider.EXPECT().Cleanup()
				table.EXPECT().Cmdline(gomock.Eq(int32(333))).Return(nil, resolveErr)

				stdout, _, err := runApp("--format", "plain")
				Expect(err).ShouldNot(HaveOccurred())
				Expect(stdout).Should(Equal("GPU 0: 1.00 / 24.00 GB\n  Unknown (PID 333), 1.00 GB\n"))
			},
			Entry("when the process is gone", process.ErrorProcessNotRunning),
			Entry("when access is denied", fs.ErrPermission),
			Entry("when the process is a zombie", procresolver.ErrZombie),
			Entry("when the lookup fails unexpectedly", errors.New("Boom!")),
		)
	})

	Context("when one GPU can not be queried", func() {
		It("should skip it and report the others", func() {
			provider.EXPECT().ListDevices().Return([]deviceinfo.Device{gpu0, gpu1}, nil)
			provider.EXPECT().DeviceTotalMemory(gomock.Eq(gpu0)).
				Return(uint64(0), deviceinfo.NewDeviceQueryError(0, "get memory info", errors.New("Boom!")))
			provider.EXPECT().DeviceTotalMemory(gomock.Eq(gpu1)).Return(16*testutils.GiB, nil)
			provider.EXPECT().RunningClaims(gomock.Eq(gpu1)).Return([]deviceinfo.ProcessInfo{}, nil)
			provider.EXPECT().Cleanup()

			stdout, stderr, err := runApp("--format", "plain")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(stdout).Should(Equal("GPU 1: 0.00 / 16.00 GB\n"))
			Expect(stderr).Should(ContainSubstring("Skipping GPU"))
		})
	})
})
