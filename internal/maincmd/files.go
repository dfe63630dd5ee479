package maincmd

import (
	"fmt"
	"os"

	"github.com/jlang-gyoji/gyoji/lang/token"
)

// readFile reads path's bytes and interns it into files, returning the
// FileID every downstream stage attributes source positions against.
func readFile(files *token.FileTable, path string) (token.FileID, []byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", path, err)
	}
	return files.Intern(path), src, nil
}
