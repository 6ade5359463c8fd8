/*
 * Copyright 2025 Carver Automation Corporation.
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

package filters

import "errors"

// ClassOf builds an ErrorClass matching any error whose chain contains
// the given sentinel.
func ClassOf(name string, target error) ErrorClass {
	return ErrorClass{
		Name: name,
		Matches: func(err error) bool {
			return errors.Is(err, target)
		},
	}
}

// ClassFunc builds an ErrorClass from an arbitrary predicate over the
// error chain.
func ClassFunc(name string, matches func(err error) bool) ErrorClass {
	return ErrorClass{Name: name, Matches: matches}
}
