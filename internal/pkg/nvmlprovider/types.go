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

package nvmlprovider

import (
	"math"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// Backend is the name reported by the NVML provider.
const Backend = "nvml"

// valueNotAvailable is what NVML reports as used memory when the driver can not
// attribute memory to a process, for example without sufficient privileges.
const valueNotAvailable = uint64(math.MaxUint64)

// newLibrary returns the NVML entry points. Tests replace it with go-nvml mocks.
var newLibrary = func() nvml.Interface {
	return nvml.New()
}
