package decoder

import (
	"fmt"

	"github.com/WendelHime/gotorrent/internal/shared/models"
)

// DecodeHashList splits the concatenated piece hashes of an info dictionary
// into one hash per piece.
func DecodeHashList(pieces []byte) (models.HashList, error) {
	if len(pieces)%models.HashSize != 0 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidHashLength, len(pieces))
	}

	hashes := make(models.HashList, len(pieces)/models.HashSize)
	for i := range hashes {
		copy(hashes[i][:], pieces[i*models.HashSize:(i+1)*models.HashSize])
	}
	return hashes, nil
}
