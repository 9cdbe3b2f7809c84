package database_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/blockchain/hasher"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestCanonicalEncoding(t *testing.T) {
	type table struct {
		name  string
		block database.Block
		exp   string
	}

	tt := []table{
		{
			name:  "empty",
			block: database.NewBlock(1614556800000, nil, "0", nil),
			exp:   `{"timestamp":1614556800000,"trans":[],"prev_block_hash":"0","nonce":0}`,
		},
		{
			name: "trans",
			block: database.NewBlock(7, []database.Tx{
				database.NewTx("address1", "address2", 10),
				database.NewRewardTx("miner<&>", -3),
			}, "00ab", nil),
			exp: `{"timestamp":7,"trans":[{"from":"address1","to":"address2","amount":10},{"from":"","to":"miner<&>","amount":-3}],"prev_block_hash":"00ab","nonce":0}`,
		},
	}

	t.Log("Given the need to hash blocks from a canonical encoding.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen handling a %s block.", testID, tst.name)
				{
					got := string(tst.block.Encode())
					if got != tst.exp {
						t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, got)
						t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.exp)
						t.Fatalf("\t%s\tTest %d:\tShould get back the canonical encoding.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get back the canonical encoding.", success, testID)

					if exp := hasher.SHA256([]byte(tst.exp)); tst.block.Hash != exp {
						t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, tst.block.Hash)
						t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, exp)
						t.Fatalf("\t%s\tTest %d:\tShould hash the canonical encoding.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould hash the canonical encoding.", success, testID)
				}
			}

			t.Run(tst.name, f)
		}
	}
}

func TestHashDeterminism(t *testing.T) {
	t.Log("Given the need to recompute the same hash for the same block.")
	{
		trans := []database.Tx{database.NewTx("a", "b", 10)}
		b1 := database.NewBlock(1000, trans, "0", nil)
		b2 := database.NewBlock(1000, []database.Tx{database.NewTx("a", "b", 10)}, "0", nil)

		if b1.CalculateHash() != b1.CalculateHash() {
			t.Fatalf("\t%s\tShould get the same hash on repeated calls.", failed)
		}
		t.Logf("\t%s\tShould get the same hash on repeated calls.", success)

		if b1.Hash != b2.Hash {
			t.Fatalf("\t%s\tShould get the same hash for equal content.", failed)
		}
		t.Logf("\t%s\tShould get the same hash for equal content.", success)

		b2.Nonce++
		if b1.Hash == b2.CalculateHash() {
			t.Fatalf("\t%s\tShould get a different hash when the nonce changes.", failed)
		}
		t.Logf("\t%s\tShould get a different hash when the nonce changes.", success)

		b3 := database.NewBlock(1000, []database.Tx{database.NewTx("a", "b", 10)}, "0", hasher.Keccak256)
		if b3.Hash == b1.Hash || len(b3.Hash) != hasher.DigestLength {
			t.Fatalf("\t%s\tShould hash with the configured strategy.", failed)
		}
		t.Logf("\t%s\tShould hash with the configured strategy.", success)
	}
}

func TestMine(t *testing.T) {
	t.Log("Given the need to mine a block to a difficulty.")
	{
		for difficulty := uint(0); difficulty <= 3; difficulty++ {
			t.Logf("\tTest %d:\tWhen mining with difficulty %d.", difficulty, difficulty)
			{
				block := database.NewBlock(uint64(time.Now().UnixMilli()), []database.Tx{database.NewTx("a", "b", 1)}, "0", nil)

				var events []string
				ev := func(v string, args ...any) {
					events = append(events, v)
				}

				if err := block.Mine(context.Background(), difficulty, ev); err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to mine the block: %v", failed, difficulty, err)
				}
				t.Logf("\t%s\tTest %d:\tShould be able to mine the block.", success, difficulty)

				if !strings.HasPrefix(block.Hash, strings.Repeat("0", int(difficulty))) {
					t.Fatalf("\t%s\tTest %d:\tShould have %d leading zeros: %s", failed, difficulty, difficulty, block.Hash)
				}
				t.Logf("\t%s\tTest %d:\tShould have %d leading zeros.", success, difficulty, difficulty)

				if block.Hash != block.CalculateHash() {
					t.Fatalf("\t%s\tTest %d:\tShould leave the hash matching the content.", failed, difficulty)
				}
				t.Logf("\t%s\tTest %d:\tShould leave the hash matching the content.", success, difficulty)

				if len(events) == 0 || !strings.Contains(events[len(events)-1], "SOLVED") {
					t.Fatalf("\t%s\tTest %d:\tShould emit a solved event.", failed, difficulty)
				}
				t.Logf("\t%s\tTest %d:\tShould emit a solved event.", success, difficulty)
			}
		}
	}
}

func TestMineZeroDifficulty(t *testing.T) {
	t.Log("Given the need to mine with no difficulty.")
	{
		block := database.NewBlock(1, nil, "0", nil)
		hash := block.Hash

		if err := block.Mine(context.Background(), 0, nil); err != nil {
			t.Fatalf("\t%s\tShould be able to mine the block: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to mine the block.", success)

		if block.Nonce != 0 || block.Hash != hash {
			t.Fatalf("\t%s\tShould leave the nonce and hash unchanged, nonce %d.", failed, block.Nonce)
		}
		t.Logf("\t%s\tShould leave the nonce and hash unchanged.", success)
	}
}

func TestMineCancel(t *testing.T) {
	t.Log("Given the need to stop a mining operation that can't finish.")
	{
		block := database.NewBlock(1, nil, "0", nil)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err := block.Mine(ctx, hasher.DigestLength+1, nil)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("\t%s\tShould get back a deadline error, got %v.", failed, err)
		}
		t.Logf("\t%s\tShould get back a deadline error.", success)
	}
}

func TestIsHashSolved(t *testing.T) {
	type table struct {
		difficulty uint
		hash       string
		exp        bool
	}

	tt := []table{
		{0, "abc", true},
		{0, "", true},
		{2, "00ab", true},
		{2, "0a0b", false},
		{3, "00", false},
		{4, "0000", true},
	}

	t.Log("Given the need to check a hash against a difficulty.")
	{
		for testID, tst := range tt {
			if got := database.IsHashSolved(tst.difficulty, tst.hash); got != tst.exp {
				t.Fatalf("\t%s\tTest %d:\tShould get %v for %q at difficulty %d.", failed, testID, tst.exp, tst.hash, tst.difficulty)
			}
			t.Logf("\t%s\tTest %d:\tShould get %v for %q at difficulty %d.", success, testID, tst.exp, tst.hash, tst.difficulty)
		}
	}
}
