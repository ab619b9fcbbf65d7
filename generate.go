//go:build generate
// +build generate

// regenerate the golden files of the generator
//go:generate go test ./cmd/generate-example -run TestGenerateExampleE2E -update

package gen
