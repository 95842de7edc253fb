// getctl materializes filtered data trees from fixture files: a JSON schema
// definition plus a JSON record store stand in for a live backend, which
// makes the tool handy for inspecting what a given selector set would
// return and how default flags propagate.
package main

func main() {
	execute()
}
