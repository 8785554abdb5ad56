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
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"syscall"

	"github.com/shirou/gopsutil/v4/process"
)

// Classify maps a ProcessTable error to the kind of failure it represents.
func Classify(err error) FailureKind {
	switch {
	case err == nil:
		return NoFailure
	case errors.Is(err, ErrZombie):
		return Zombie
	case errors.Is(err, process.ErrorProcessNotRunning),
		errors.Is(err, os.ErrProcessDone),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, syscall.ESRCH):
		return NotFound
	case errors.Is(err, fs.ErrPermission):
		return AccessDenied
	default:
		return Unexpected
	}
}

type resolver struct {
	table ProcessTable
}

func NewResolver(table ProcessTable) Resolver {
	return &resolver{table: table}
}

func (r *resolver) Resolve(pid uint32) (string, error) {
	args, err := r.table.Cmdline(int32(pid))

	switch kind := Classify(err); kind {
	case NoFailure:
	case NotFound, AccessDenied, Zombie:
		// The process may have exited between the GPU query and this lookup.
		slog.Debug("Process could not be resolved", "pid", pid, "reason", kind.String(), "error", err)
		return UnknownProcess, nil
	default:
		return UnknownProcess, fmt.Errorf("failed to resolve process %d: %w", pid, err)
	}

	name := strings.Join(args, " ")
	if strings.TrimSpace(name) == "" {
		return UnknownProcess, nil
	}

	return name, nil
}
