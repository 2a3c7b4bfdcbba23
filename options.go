// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package docdiff

import "github.com/coconstruct/docdiff/internal/config"

// Option configures the behavior of [New].
type Option = config.Option

// MaxBlockTokens sets the largest size of a non-matching block, counted as source plus
// destination tokens, that is compared token by token. Larger blocks are reported as a single
// diff that replaces the whole block. The default is 3000. A value <= 0 removes the limit.
func MaxBlockTokens(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.MaxBlockTokens = max(0, n)
		return config.MaxBlockTokens
	}
}

// AutoJunk enables or disables a heuristic that speeds up the search for matching blocks in
// documents with at least 200 tokens by not using tokens that make up more than 1% of the
// destination as starting points for matches. It's enabled by default.
func AutoJunk(enabled bool) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.AutoJunk = enabled
		return config.AutoJunk
	}
}
