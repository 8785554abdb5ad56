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
	"fmt"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// AllDevices selects every GPU present on the node.
const AllDevices = "all"

// ParseDevices parses a GPU selection such as "all", "0" or "0,2-3". It returns
// nil when all devices are selected.
func ParseDevices(devices string) (*bitset.BitSet, error) {
	devices = strings.TrimSpace(devices)
	if devices == "" || strings.EqualFold(devices, AllDevices) {
		return nil, nil
	}

	selection := bitset.New(0)
	for _, numberOrRange := range strings.Split(devices, ",") {
		rangeTokens := strings.Split(strings.TrimSpace(numberOrRange), "-")
		rangeTokenCount := len(rangeTokens)
		if rangeTokenCount > 2 {
			return nil, fmt.Errorf("range can only be '<number>-<number>', but found '%s'", numberOrRange)
		} else if rangeTokenCount == 1 {
			number, err := parseIndex(rangeTokens[0])
			if err != nil {
				return nil, err
			}
			selection.Set(number)
		} else {
			start, err := parseIndex(rangeTokens[0])
			if err != nil {
				return nil, err
			}
			end, err := parseIndex(rangeTokens[1])
			if err != nil {
				return nil, err
			}
			if start > end {
				return nil, fmt.Errorf("invalid range '%s': start is greater than end", numberOrRange)
			}

			for i := start; i <= end; i++ {
				selection.Set(i)
			}
		}
	}

	return selection, nil
}

func parseIndex(s string) (uint, error) {
	number, err := strconv.ParseUint(strings.TrimSpace(s), 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid GPU index '%s'", s)
	}
	return uint(number), nil
}
