/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/deepdreamgames/pachka/internal/ojson"
)

// jsonWriter renders every response body through the registry's own
// ordered, fully-escaped codec rather than gin's built-in JSON
// rendering, since gin's encoding/json-backed c.JSON would sort object
// keys and leave most printable Unicode unescaped.
var jsonWriter = ojson.Writer{}

func writeJSON(c *gin.Context, status int, v ojson.Value) {
	body := jsonWriter.Write(v)
	c.Data(status, "application/json; charset=utf-8", []byte(body))
}

func writeError(c *gin.Context, status int, message string) {
	o := ojson.NewObject()
	o.Set("statusCode", ojson.Int(int64(status)))
	o.Set("error", ojson.String(message))
	writeJSON(c, status, ojson.FromObject(o))
}
