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

package procresolver

import (
	"slices"

	"github.com/shirou/gopsutil/v4/process"
)

type processTable struct{}

// NewProcessTable returns a ProcessTable backed by gopsutil.
func NewProcessTable() ProcessTable {
	return processTable{}
}

func (processTable) Cmdline(pid int32) ([]string, error) {
	proc, err := process.NewProcess(pid)
	if err != nil {
		return nil, err
	}

	status, err := proc.Status()
	if err != nil {
		return nil, err
	}
	if slices.Contains(status, process.Zombie) {
		return nil, ErrZombie
	}

	return proc.CmdlineSlice()
}
