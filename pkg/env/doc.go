// pkg/env/doc.go
package env

/*
Package env provides the dependency probes for extconf.

It handles:
  - Finding native libraries that export a probe symbol
  - Finding headers in platform-conditional include directories
  - Finding code-generation tools on PATH
  - Generating compiler and linker flags from what was found

Basic Usage:

    import "github.com/arc-language/extconf/pkg/env"

    // Capture the environment once and create the prober
    snap := env.Capture(os.Getenv)
    e := env.New("../..", snap, env.ObjectSymbols{}, logger)

    // Find a library exporting xmlParseDoc
    lib, err := e.FindLibrary(platform.UnixLike, core.LibraryRequirement{
        Name: "xml2", Symbol: "xmlParseDoc", Package: "libxml",
    })
    if err != nil {
        return err // wraps core.ErrLibraryNotFound
    }
    fmt.Printf("Found: %s at %s\n", lib.Name, lib.Path)

Search Paths:

Directories differ per platform variant and are kept in a single table
(see DefaultSearchPaths). Entries may reference $ROOT (the project root)
and $HOME, both expanded from the Environment, not the process.

Search roots (Environment.Roots) are searched before the table. A root
that is a Nix store path is read with the flat Nix layout (lib/, include/);
any other root is treated as an FHS-style prefix.

Symbol Probes:

ObjectSymbols reads ELF, PE, Mach-O and ar archives directly, which works
for libraries built for another target (for example mingw DLLs checked
from a Linux host). DlopenSymbols loads the library on the host instead.
AnySymbol only checks that the file exists.
*/
