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

package appconfig

import (
	"github.com/bits-and-blooms/bitset"
)

type DumpConfig struct {
	Enabled     bool   // Write the collected reports to disk
	Directory   string // Directory the dump files are written to
	Compression bool   // Gzip the dump files
}

type Config struct {
	Backend    string
	SMIPath    string
	Format     string
	NoColor    bool
	NoHostname bool
	// GPUDevices holds the indices of the GPUs to report, nil means all of them.
	GPUDevices *bitset.BitSet
	Debug      bool
	LogFormat  string
	Dump       DumpConfig
}
