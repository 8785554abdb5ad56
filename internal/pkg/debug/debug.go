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

package debug

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/NVIDIA/mgpus/internal/pkg/appconfig"
)

// FileDumper handles file-based debugging output
type FileDumper struct {
	config appconfig.DumpConfig
	now    func() time.Time
}

// NewFileDumper creates a new file dumper with the given configuration
func NewFileDumper(config appconfig.DumpConfig) *FileDumper {
	return &FileDumper{
		config: config,
		now:    time.Now,
	}
}

// DumpToFile writes any JSON-serializable data to a file and returns the filename.
// Nothing is written when dumping is disabled.
func (fd *FileDumper) DumpToFile(data any, prefix, suffix string) (string, error) {
	if !fd.config.Enabled {
		return "", nil
	}

	// The first block of a random UUID keeps concurrent runs from colliding.
	randomStr := strings.SplitN(uuid.NewString(), "-", 2)[0]

	timestamp := fd.now().Format("20060102-150405")
	filename := fmt.Sprintf("%s-%s-%s-%s", prefix, suffix, timestamp, randomStr)

	if fd.config.Compression {
		filename += ".json.gz"
	} else {
		filename += ".json"
	}

	fullPath := filepath.Join(fd.config.Directory, filename)

	if err := os.MkdirAll(fd.config.Directory, 0o755); err != nil {
		return "", fmt.Errorf("failed to create debug directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create debug file: %w", err)
	}
	defer file.Close()

	if fd.config.Compression {
		gz := gzip.NewWriter(file)
		if err := encode(gz, data); err != nil {
			return "", err
		}
		if err := gz.Close(); err != nil {
			return "", fmt.Errorf("failed to compress data: %w", err)
		}
	} else if err := encode(file, data); err != nil {
		return "", err
	}

	slog.Debug("Debug file written",
		slog.String("file", fullPath),
		slog.String("prefix", prefix),
		slog.String("suffix", suffix))

	return fullPath, nil
}

func encode(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode data: %w", err)
	}
	return nil
}
