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

package hostname

import (
	osinterface "github.com/NVIDIA/mgpus/internal/pkg/os"
)

// NodeNameEnv overrides the OS hostname, e.g. with the Kubernetes node name.
const NodeNameEnv = "NODE_NAME"

var os osinterface.OS = osinterface.RealOS{}

// GetHostname return the name of the node the GPUs were read on.
func GetHostname() (string, error) {
	if nodeName := os.Getenv(NodeNameEnv); nodeName != "" {
		return nodeName, nil
	}
	hostname, err := os.Hostname()
	if err != nil {
		return "", err
	}
	return hostname, nil
}
