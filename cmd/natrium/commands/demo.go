package commands

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"natrium/internal/crypto/aead"
	"natrium/internal/crypto/box"
	"natrium/internal/crypto/encoding"
	"natrium/internal/crypto/kdf"
	"natrium/internal/crypto/pwhash"
	"natrium/internal/crypto/random"
	"natrium/internal/crypto/secretbox"
	"natrium/internal/crypto/sign"
)

const demoMessage = "Hello World"

// demo: run every primitive once and fail on the first broken round trip.
func demoCmd() *cobra.Command {
	var ops, mem uint64
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Walk through every primitive and check each round trip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			appCtx.Log.Debug("running demo", "opslimit", ops, "memlimit", mem)
			return runDemo(cmd.OutOrStdout(), ops, mem)
		},
	}
	cmd.Flags().Uint64Var(&ops, "opslimit", pwhash.OpsLimitInteractive, "pwhash opslimit")
	cmd.Flags().Uint64Var(&mem, "memlimit", pwhash.MemLimitInteractive, "pwhash memlimit in bytes")
	return cmd
}

// printer writes "label: value" lines and keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(label string, v any) {
	if p.err != nil {
		return
	}
	if b, ok := v.([]byte); ok {
		v = encoding.ToBase64(b)
	}
	_, p.err = fmt.Fprintf(p.w, "%s: %v\n", label, v)
}

func (p *printer) section(title string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "\n# %s\n", title)
}

func runDemo(w io.Writer, ops, mem uint64) error {
	p := &printer{w: w}
	steps := []func(*printer) error{
		demoEncoding,
		demoConstants,
		demoRandom,
		demoKeygen,
		demoKeypairs,
		demoSecretbox,
		demoBox,
		demoAEAD,
		demoKDF,
		func(p *printer) error { return demoPwhash(p, ops, mem) },
	}
	for _, step := range steps {
		if err := step(p); err != nil {
			return err
		}
		if p.err != nil {
			return p.err
		}
	}
	return nil
}

func demoEncoding(p *printer) error {
	p.section("encoding")
	b64 := encoding.ToBase64(encoding.FromString(demoMessage))
	raw, err := encoding.FromBase64(b64)
	if err != nil {
		return err
	}
	again := encoding.ToBase64(raw)
	s, err := encoding.ToString(raw)
	if err != nil {
		return err
	}
	p.line("to_base64", b64)
	p.line("from_base64", fmt.Sprint(raw))
	p.line("to_base64(from_base64)", again)
	p.line("to_string", s)
	p.line("to_hex", encoding.ToHex(encoding.FromString(demoMessage)))
	if again != b64 || s != demoMessage {
		return fmt.Errorf("demo: encoding round trip failed")
	}
	return nil
}

func demoConstants(p *printer) error {
	p.section("constants")
	p.line("secretbox_KEYBYTES", secretbox.KeyBytes)
	p.line("secretbox_NONCEBYTES", secretbox.NonceBytes)
	p.line("pwhash_SALTBYTES", pwhash.SaltBytes)
	p.line("pwhash_ALG_DEFAULT", fmt.Sprintf("%d (%s)", int(pwhash.AlgDefault), pwhash.AlgDefault))
	p.line("pwhash_OPSLIMIT_INTERACTIVE", pwhash.OpsLimitInteractive)
	p.line("pwhash_MEMLIMIT_INTERACTIVE", pwhash.MemLimitInteractive)
	p.line("pwhash_BYTES_MIN", pwhash.BytesMin)
	p.line("pwhash_BYTES_MAX", uint64(pwhash.BytesMax))
	p.line("box_PUBLICKEYBYTES", box.PublicKeyBytes)
	p.line("box_SECRETKEYBYTES", box.SecretKeyBytes)
	p.line("aead_xchacha20poly1305_ietf_KEYBYTES", aead.KeyBytes)
	p.line("kdf_KEYBYTES", kdf.KeyBytes)
	return nil
}

func demoRandom(p *printer) error {
	p.section("random")
	for _, n := range []int{1, 3, 9} {
		b, err := random.Bytes(n)
		if err != nil {
			return err
		}
		p.line(fmt.Sprintf("randombytes_buf(%d)", n), fmt.Sprint(b))
	}
	for _, n := range []int64{1, 10} {
		v, err := random.Uniform(n)
		if err != nil {
			return err
		}
		p.line(fmt.Sprintf("randombytes_uniform(%d)", n), v)
	}
	return nil
}

func demoKeygen(p *printer) error {
	p.section("keygen")
	gens := []struct {
		name string
		gen  func() ([]byte, error)
	}{
		{"secretbox_key", secretbox.Keygen},
		{"aead_xchacha20poly1305_ietf_key", aead.Keygen},
		{"kdf_key", kdf.Keygen},
	}
	for _, g := range gens {
		for _, f := range []encoding.Format{encoding.FormatRaw, encoding.FormatBase64, encoding.FormatHex} {
			key, err := g.gen()
			if err != nil {
				return err
			}
			label := g.name
			if f != encoding.FormatRaw {
				label += "_" + f.String()
			}
			if f == encoding.FormatRaw {
				p.line(label, key)
			} else {
				p.line(label, string(f.Marshal(key)))
			}
		}
	}
	return nil
}

func demoKeypairs(p *printer) error {
	p.section("keypairs")
	bkp, err := box.Keypair()
	if err != nil {
		return err
	}
	defer bkp.Wipe()
	p.line("box_keypair.privateKey", bkp.PrivateKey)
	p.line("box_keypair.publicKey", bkp.PublicKey)
	p.line("box_keypair.keyType", bkp.KeyType)

	skp, err := sign.Keypair()
	if err != nil {
		return err
	}
	defer skp.Wipe()
	p.line("sign_keypair.privateKey", skp.PrivateKey)
	p.line("sign_keypair.publicKey", skp.PublicKey)
	p.line("sign_keypair.keyType", skp.KeyType)

	fromBytes, err := encoding.FromBase64(encoding.ToBase64([]byte(demoMessage)))
	if err != nil {
		return err
	}
	sigBytes, err := sign.Detached(fromBytes, skp.PrivateKey)
	if err != nil {
		return err
	}
	sigString, err := sign.Detached(encoding.FromString(demoMessage), skp.PrivateKey)
	if err != nil {
		return err
	}
	okBytes := sign.VerifyDetached(sigBytes, fromBytes, skp.PublicKey)
	okString := sign.VerifyDetached(sigString, encoding.FromString(demoMessage), skp.PublicKey)
	okCross := sign.VerifyDetached(sigString, fromBytes, skp.PublicKey)
	p.line("sign_detached_from_uint8array", sigBytes)
	p.line("sign_verify_detached_from_uint8array", okBytes)
	p.line("sign_detached_from_string", sigString)
	p.line("sign_verify_detached_from_string", okString)
	p.line("sign_verify_detached_from_string_2", okCross)
	if !okBytes || !okString || !okCross {
		return fmt.Errorf("demo: detached signature did not verify")
	}
	return nil
}

func demoSecretbox(p *printer) error {
	p.section("secretbox")
	key, err := secretbox.Keygen()
	if err != nil {
		return err
	}
	nonce, err := random.Bytes(secretbox.NonceBytes)
	if err != nil {
		return err
	}
	fromString, err := secretbox.Easy(encoding.FromString(demoMessage), nonce, key)
	if err != nil {
		return err
	}
	fromBytes, err := secretbox.Easy([]byte(demoMessage), nonce, key)
	if err != nil {
		return err
	}
	p.line("secretbox_easy_from_string", fromString)
	p.line("secretbox_easy_from_uint8array", fromBytes)
	for _, ct := range [][]byte{fromString, fromBytes} {
		pt, err := secretbox.OpenEasy(ct, nonce, key)
		if err != nil {
			return fmt.Errorf("demo: secretbox_open_easy: %w", err)
		}
		if string(pt) != demoMessage {
			return fmt.Errorf("demo: secretbox_open_easy returned %q", pt)
		}
	}
	return nil
}

func demoBox(p *printer) error {
	p.section("box")
	alice, err := box.Keypair()
	if err != nil {
		return err
	}
	defer alice.Wipe()
	bob, err := box.Keypair()
	if err != nil {
		return err
	}
	defer bob.Wipe()
	nonce, err := random.Bytes(box.NonceBytes)
	if err != nil {
		return err
	}

	ct, err := box.Easy(encoding.FromString(demoMessage), nonce, alice.PublicKey, bob.PrivateKey)
	if err != nil {
		return err
	}
	p.line("box_easy_from_string", ct)
	pt, err := box.OpenEasy(ct, nonce, bob.PublicKey, alice.PrivateKey)
	if err != nil {
		return fmt.Errorf("demo: box_open_easy: %w", err)
	}
	if string(pt) != demoMessage {
		return fmt.Errorf("demo: box_open_easy returned %q", pt)
	}

	sealed, err := box.Seal([]byte(demoMessage), bob.PublicKey)
	if err != nil {
		return err
	}
	p.line("box_seal", sealed)
	pt, err = box.SealOpen(sealed, bob.PublicKey, bob.PrivateKey)
	if err != nil {
		return fmt.Errorf("demo: box_seal_open: %w", err)
	}
	if string(pt) != demoMessage {
		return fmt.Errorf("demo: box_seal_open returned %q", pt)
	}
	return nil
}

func demoAEAD(p *printer) error {
	p.section("aead")
	key, err := aead.Keygen()
	if err != nil {
		return err
	}
	nonce, err := random.Bytes(aead.NPubBytes)
	if err != nil {
		return err
	}
	ad := []byte("demo")
	ct, err := aead.Encrypt([]byte(demoMessage), ad, nonce, key)
	if err != nil {
		return err
	}
	p.line("aead_xchacha20poly1305_ietf_encrypt", ct)
	pt, err := aead.Decrypt(ct, ad, nonce, key)
	if err != nil {
		return fmt.Errorf("demo: aead decrypt: %w", err)
	}
	if string(pt) != demoMessage {
		return fmt.Errorf("demo: aead decrypt returned %q", pt)
	}
	return nil
}

func demoKDF(p *printer) error {
	p.section("kdf")
	key, err := kdf.Keygen()
	if err != nil {
		return err
	}
	first, err := kdf.DeriveFromKey(32, 1, "__demo__", key)
	if err != nil {
		return err
	}
	second, err := kdf.DeriveFromKey(32, 2, "__demo__", key)
	if err != nil {
		return err
	}
	p.line("kdf_derive_from_key(1)", first)
	p.line("kdf_derive_from_key(2)", second)
	if bytes.Equal(first, second) {
		return fmt.Errorf("demo: kdf subkeys collide")
	}
	return nil
}

func demoPwhash(p *printer, ops, mem uint64) error {
	p.section("pwhash")
	const password = "password123"
	salt, err := random.Bytes(pwhash.SaltBytes)
	if err != nil {
		return err
	}
	fromString, err := pwhash.HashString(pwhash.BytesMin, password, salt, ops, mem, pwhash.AlgDefault)
	if err != nil {
		return err
	}
	fromBytes, err := pwhash.Hash(pwhash.BytesMin, []byte(password), salt, ops, mem, pwhash.AlgDefault)
	if err != nil {
		return err
	}
	p.line("pwhash_from_string", fromString)
	p.line("pwhash_from_uint8array", fromBytes)
	if !bytes.Equal(fromString, fromBytes) {
		return fmt.Errorf("demo: pwhash differs between string and bytes input")
	}

	str, err := pwhash.Str(password, ops, mem)
	if err != nil {
		return err
	}
	p.line("pwhash_str", str)
	if err := pwhash.StrVerify(str, password); err != nil {
		return fmt.Errorf("demo: pwhash_str_verify: %w", err)
	}
	return nil
}
