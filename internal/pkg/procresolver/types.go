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

//go:generate go run -v go.uber.org/mock/mockgen  -destination=../../mocks/pkg/procresolver/mock_process_table.go -package=procresolver -copyright_file=../../../hack/header.txt . ProcessTable
//go:generate go run -v go.uber.org/mock/mockgen  -destination=../../mocks/pkg/procresolver/mock_resolver.go -package=procresolver -copyright_file=../../../hack/header.txt . Resolver

package procresolver

import "errors"

// UnknownProcess is the display name used whenever a process can not be resolved.
const UnknownProcess = "Unknown"

// ErrZombie is returned by a ProcessTable for a process that has exited but not
// been reaped yet.
var ErrZombie = errors.New("process is a zombie")

// ProcessTable reads process metadata from the operating system.
type ProcessTable interface {
	// Cmdline returns the command line arguments of a live process.
	Cmdline(pid int32) ([]string, error)
}

// Resolver turns a pid into a human readable display name.
type Resolver interface {
	// Resolve never returns an empty name. For the expected failure kinds (gone,
	// access denied, zombie) it returns UnknownProcess and a nil error; any other
	// failure returns UnknownProcess together with the error.
	Resolve(pid uint32) (string, error)
}

type FailureKind int

const (
	NoFailure FailureKind = iota
	NotFound
	AccessDenied
	Zombie
	Unexpected
)

func (k FailureKind) String() string {
	switch k {
	case NoFailure:
		return "none"
	case NotFound:
		return "not found"
	case AccessDenied:
		return "access denied"
	case Zombie:
		return "zombie"
	default:
		return "unexpected"
	}
}
