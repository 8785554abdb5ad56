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

//go:generate go run -v go.uber.org/mock/mockgen  -destination=../../mocks/pkg/deviceinfo/mock_device_info.go -package=deviceinfo -copyright_file=../../../hack/header.txt . Provider

package deviceinfo

// Provider enumerates GPUs and the compute processes holding their memory.
// Implementations acquire the underlying subsystem when they are constructed and
// release it in Cleanup.
type Provider interface {
	// Backend names the subsystem behind the provider, e.g. "nvml".
	Backend() string
	// ListDevices returns all devices ordered by index.
	ListDevices() ([]Device, error)
	// DeviceTotalMemory returns the memory capacity of the device in bytes.
	DeviceTotalMemory(device Device) (uint64, error)
	// RunningClaims returns the processes holding compute memory on the device,
	// in the order reported by the subsystem. An idle device returns an empty slice.
	RunningClaims(device Device) ([]ProcessInfo, error)
	Cleanup()
}

type Device struct {
	Index int
	Name  string
	UUID  string
}

type ProcessInfo struct {
	PID             uint32
	UsedMemoryBytes uint64
}
