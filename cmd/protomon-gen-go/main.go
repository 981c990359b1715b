// The protomon-gen-go binary is a protoc plugin that generates Go source
// implementing protomon's value-codec contracts for every message, enum,
// and oneof in the files protoc asks it to compile. protomon-gen-go never
// touches the .proto files or the protoc binary itself, only the
// FileDescriptorSet protoc hands it on stdin, matching golang-protobuf's
// own cmd/protoc-gen-go/main.go.
package main

import (
	"errors"
	"flag"

	"github.com/protomon/protomon/protogen"
)

func main() {
	var (
		flags     flag.FlagSet
		plugins   = flags.String("plugins", "", "deprecated option")
		extraOpts = &protogen.Options{
			ParamFunc: flags.Set,
		}
	)
	protogen.Run(extraOpts, func(p *protogen.Plugin) error {
		if *plugins != "" {
			return errors.New("protomon-gen-go: plugins are not supported")
		}
		return p.GenerateFiles()
	})
}
