// Command metaverse runs the metaverse workspace API and its maintenance tasks.
//
// @title        Metaverse Workspace API
// @version      1.0
// @description  Accounts, avatars, element catalog, maps and spaces.
// @BasePath     /
package main

//go:generate swag init -g main.go -d .,../../internal/api/handler,../../internal/core/domain -o ../../docs --outputTypes go

import (
	"os"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
