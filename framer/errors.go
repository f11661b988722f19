// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framer

import "errors"

// ErrInvalidArgument is returned by ReadMessage on a Framer that was created
// with a nil connection. New itself does not check its connection.
var ErrInvalidArgument = errors.New("framer: invalid argument")
