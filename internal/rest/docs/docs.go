// Package docs holds the swagger spec for the status API, authored by
// hand and kept intentionally small: it only describes /status.
package docs

import "github.com/swaggo/swag"

const doc = `{
    "swagger": "2.0",
    "info": {
        "title": "enigma-sim status API",
        "description": "Read-only status endpoint for the running machine.",
        "version": "1.0"
    },
    "paths": {
        "/status": {
            "get": {
                "produces": ["application/json"],
                "summary": "Report the machine's current mode and rotor positions",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    }
}`

// SwaggerInfo matches the shape swag init emits, registered under the
// "swagger" instance name that gin-swagger looks up by default.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Title:            "enigma-sim status API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  doc,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
