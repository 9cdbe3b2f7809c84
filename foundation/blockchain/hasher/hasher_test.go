package hasher_test

import (
	"testing"

	"github.com/ardanlabs/powchain/foundation/blockchain/hasher"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestStrategies(t *testing.T) {
	type table struct {
		name     string
		strategy string
		data     string
		exp      string
	}

	tt := []table{
		{
			name:     "sha256",
			strategy: hasher.StrategySHA256,
			data:     "abc",
			exp:      "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
		{
			name:     "keccak256",
			strategy: hasher.StrategyKeccak256,
			data:     "",
			exp:      "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		},
		{
			name:     "upper",
			strategy: "SHA256",
			data:     "abc",
			exp:      "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
	}

	t.Log("Given the need to hash data with a named strategy.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen handling strategy %q.", testID, tst.strategy)
				{
					fn, err := hasher.Retrieve(tst.strategy)
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to retrieve the strategy: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to retrieve the strategy.", success, testID)

					got := fn([]byte(tst.data))
					if got != tst.exp {
						t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, got)
						t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.exp)
						t.Fatalf("\t%s\tTest %d:\tShould get back the right digest.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get back the right digest.", success, testID)

					if len(got) != hasher.DigestLength {
						t.Fatalf("\t%s\tTest %d:\tShould get back %d characters, got %d.", failed, testID, hasher.DigestLength, len(got))
					}
					t.Logf("\t%s\tTest %d:\tShould get back %d characters.", success, testID, hasher.DigestLength)
				}
			}

			t.Run(tst.name, f)
		}
	}
}

func TestRetrieveUnknown(t *testing.T) {
	t.Log("Given the need to reject unknown strategies.")
	{
		if _, err := hasher.Retrieve("md5"); err == nil {
			t.Fatalf("\t%s\tShould not be able to retrieve an unknown strategy.", failed)
		}
		t.Logf("\t%s\tShould not be able to retrieve an unknown strategy.", success)
	}
}
