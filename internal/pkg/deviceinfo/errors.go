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

package deviceinfo

import (
	"errors"
	"fmt"
)

// ErrSubsystemUnavailable is returned when the GPU management interface can not be
// initialized or queried at all. It aborts the run.
var ErrSubsystemUnavailable = errors.New("GPU subsystem unavailable")

// DeviceQueryError reports a failed query against a single device. Callers skip the
// device and continue with the others.
type DeviceQueryError struct {
	Index int
	Op    string
	Err   error
}

func (e *DeviceQueryError) Error() string {
	return fmt.Sprintf("failed to %s for GPU %d; err: %v", e.Op, e.Index, e.Err)
}

func (e *DeviceQueryError) Unwrap() error {
	return e.Err
}

// NewDeviceQueryError wraps err with the device index and the failed operation.
func NewDeviceQueryError(index int, op string, err error) error {
	return &DeviceQueryError{Index: index, Op: op, Err: err}
}
