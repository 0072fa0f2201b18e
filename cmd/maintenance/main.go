// Command maintenance runs one-off repair jobs against the site database.
package main

import (
	"os"

	"github.com/IbroIT/SU-back-back-sub001/utils"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		utils.SyncLogger()
		os.Exit(1)
	}
	utils.SyncLogger()
}
