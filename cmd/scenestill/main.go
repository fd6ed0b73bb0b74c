// Command scenestill generates and validates the Scene Still XML sitemap.
package main

import "github.com/dbsmedya/scenestill/cmd/scenestill/cmd"

func main() {
	cmd.Execute()
}
