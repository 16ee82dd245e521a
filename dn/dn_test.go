package dn_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/ldapdn/dn"
)

func mustParse(t testing.TB, s string) *dn.DN {
	t.Helper()

	d, err := dn.Parse(s)
	if err != nil {
		t.Fatalf("dn.Parse(%q) error = %v, want nil", s, err)
	}
	return d
}

func TestDN_Normalized(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"case folding of types", "CN=Steve Kille,O=Isode Limited,C=GB", "cn=Steve Kille,o=Isode Limited,c=GB"},
		{"multi value ordered", "CN=J. Smith+OU=Sales,O=Widget Inc.,C=US", "cn=J. Smith+ou=Sales,o=Widget Inc.,c=US"},
		{"multi value reversed", "OU=Sales+CN=J. Smith,O=Widget Inc.,C=US", "cn=J. Smith+ou=Sales,o=Widget Inc.,c=US"},
		{"multi value with spaces", "OU=Sales + CN=J. Smith ,O=Widget Inc.", "cn=J. Smith+ou=Sales,o=Widget Inc."},
		{"utf-8 hex escapes", `SN=Lu\C4\8Di\C4\87`, `sn=Lu\C4\8Di\C4\87`},
		{"lower hex digits", `SN=Lu\c4\8di\c4\87`, `sn=Lu\C4\8Di\C4\87`},
		{"control char escape", `CN=My\0dChar`, `cn=My\0DChar`},
		{
			"quoted value and legacy separators",
			`CN="Quoted Last, Quoted First", O=Space After Comma ; C = Semi's too!`,
			`cn=Quoted Last\, Quoted First,o=Space After Comma,c=Semi's too!`,
		},
		{
			"oid prefix",
			`OID.1.3.6.1.4.1.1466.0=Bytes \+ Bytes, O=OID Prefix,C=GB`,
			`1.3.6.1.4.1.1466.0=Bytes \+ Bytes,o=OID Prefix,c=GB`,
		},
		{"lower oid prefix", "oid.2.5.4.3=x", "2.5.4.3=x"},
		{"mixed case oid prefix kept", "Oid.2.5.4.3=x", "Oid.2.5.4.3=x"},
		{"spaces around equals", `CN =Before\0DAfter,O= Test,C  =  GB`, `cn=Before\0DAfter,o=Test,c=GB`},
		{"hex string", "1.3.6.1.4.1.1466.0=#04024869,O=Test,C=GB", "1.3.6.1.4.1.1466.0=#04024869,o=Test,c=GB"},
		{"escaped comma", `CN=L. Eagle,O=Sue\, Grabbit and Runn,C=GB`, `cn=L. Eagle,o=Sue\, Grabbit and Runn,c=GB`},
		{"empty value", "CN=", "cn="},
		{"empty first value", "CN=,sn=Smith", "cn=,sn=Smith"},
		{"escaped trailing space", `CN=Trailing Space\ ,O=Isode Limited,C=GB`, `cn=Trailing Space\ ,o=Isode Limited,c=GB`},
		{"quoted leading spaces", `CN="  Leading", O=x`, `cn=\20 Leading,o=x`},
		{"quoted trailing spaces", `CN="Trailing  ",O=x`, `cn=Trailing \20,o=x`},
		{"hex special", `CN=a\2bb\3Dc`, `cn=a\+b\=c`},
		{"hex printable", `CN=\41bc`, "cn=Abc"},
		{"keychar type", "X-CUSTOM=v", "x-custom=v"},
		{"trailing garbage dropped", "CN=Steve Kille,O=Isode Limited,C=GB#garbage", "cn=Steve Kille,o=Isode Limited,c=GB"},
		{"junk between rdns skipped", "CN=a,junk,O=b", "cn=a,o=b"},
		{"empty rdn skipped", "CN=x,,O=y", "cn=x,o=y"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			d := mustParse(t, c.in)
			got, err := d.Normalized()
			if err != nil {
				t.Fatalf("dn.Parse(%q).Normalized() error = %v, want nil", c.in, err)
			}
			if got != c.want {
				t.Errorf("dn.Parse(%q).Normalized() = %q, want %q", c.in, got, c.want)
			}
			if s := d.String(); c.in != "" && s == "" {
				t.Errorf("dn.Parse(%q).String() = %q, want non-empty", c.in, s)
			}

			// normalize(normalize(s)) == normalize(s)
			again, err := mustParse(t, got).Normalized()
			if err != nil {
				t.Fatalf("dn.Parse(%q).Normalized() error = %v, want nil", got, err)
			}
			if again != got {
				t.Errorf("dn.Parse(%q).Normalized() = %q, want %q (idempotence)", got, again, got)
			}
		})
	}
}

func TestDN_Normalize(t *testing.T) {
	t.Parallel()

	in := "OU=Sales+CN=J. Smith,O=Widget Inc.,C=US"
	d := mustParse(t, in)

	if _, err := d.Normalized(); err != nil {
		t.Fatalf("d.Normalized() error = %v, want nil", err)
	}
	if got := d.String(); got != in {
		t.Errorf("d.String() after Normalized() = %q, want %q", got, in)
	}
	if got := d.RDNs()[0].Values()[0].Type().String(); got != "OU" {
		t.Errorf("first nested type after Normalized() = %q, want %q", got, "OU")
	}

	if err := d.Normalize(); err != nil {
		t.Fatalf("d.Normalize() error = %v, want nil", err)
	}
	want := "cn=J. Smith+ou=Sales,o=Widget Inc.,c=US"
	if got := d.String(); got != want {
		t.Errorf("d.String() after Normalize() = %q, want %q", got, want)
	}
	rdn := d.RDNs()[0]
	if got := rdn.Values()[0].Type().String(); got != "cn" {
		t.Errorf("first nested type after Normalize() = %q, want %q", got, "cn")
	}
	if !rdn.Value().IsNormalized() || !rdn.Values()[1].Type().IsNormalized() {
		t.Errorf("rdn is not marked normalized after Normalize()")
	}
	if got, err := d.AsNormalized(true); err != nil || got != want {
		t.Errorf("d.AsNormalized(true) = (%q, %v), want (%q, nil)", got, err, want)
	}
}

func TestDN_NormalizedCopy(t *testing.T) {
	t.Parallel()

	in := `CN="Quoted Last, Quoted First",O=Widget`
	d := mustParse(t, in)

	d2, err := d.NormalizedCopy()
	if err != nil {
		t.Fatalf("d.NormalizedCopy() error = %v, want nil", err)
	}
	if got, want := d2.String(), `cn=Quoted Last\, Quoted First,o=Widget`; got != want {
		t.Errorf("d.NormalizedCopy().String() = %q, want %q", got, want)
	}
	if got := d.String(); got != in {
		t.Errorf("d.String() = %q, want %q", got, in)
	}
	if !d.RDNs()[0].Value().IsQuoted() {
		t.Errorf("d.RDNs()[0].Value().IsQuoted() = false, want true")
	}
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	d := mustParse(t, "")
	if !d.IsEmpty() {
		t.Errorf("dn.Parse(\"\").IsEmpty() = false, want true")
	}
	if got := d.Len(); got != 1 {
		t.Errorf("dn.Parse(\"\").Len() = %d, want 1", got)
	}
	if got := d.String(); got != "" {
		t.Errorf("dn.Parse(\"\").String() = %q, want \"\"", got)
	}
	rdn := d.RDNs()[0]
	if rdn.Type().String() != "" || rdn.Value().String() != "" {
		t.Errorf("empty DN RDN = %q=%q, want empty type and value", rdn.Type(), rdn.Value())
	}
	if !rdn.Type().IsNormalized() || !rdn.Value().IsNormalized() {
		t.Errorf("empty DN RDN is not normalized")
	}
	// committing on the shared empty RDN must be a no-op
	if err := d.Normalize(); err != nil {
		t.Fatalf("d.Normalize() error = %v, want nil", err)
	}
	if got := dn.Empty().String(); got != "" {
		t.Errorf("dn.Empty().String() = %q, want \"\"", got)
	}
	if !d.Equal(dn.Empty()) {
		t.Errorf("dn.Parse(\"\").Equal(dn.Empty()) = false, want true")
	}
	if mustParse(t, "CN=").IsEmpty() {
		t.Errorf("dn.Parse(\"CN=\").IsEmpty() = true, want false")
	}
}

func TestDN_Equal(t *testing.T) {
	t.Parallel()

	d := mustParse(t, "OU=Sales+CN=J. Smith,O=Widget Inc.,C=US")
	cases := []struct {
		name string
		val  any
		want bool
	}{
		{"nil", nil, false},
		{"string", "cn=J. Smith+ou=Sales,o=Widget Inc.,c=US", false},
		{"same", d, true},
		{"canonical", mustParse(t, "cn=J. Smith+ou=Sales,o=Widget Inc.,c=US"), true},
		{"value", *mustParse(t, "CN=J. Smith + OU=Sales; O=Widget Inc.; C=US"), true},
		{"value case differs", mustParse(t, "CN=j. smith+OU=Sales,O=Widget Inc.,C=US"), false},
		{"other order", mustParse(t, "O=Widget Inc.,CN=J. Smith+OU=Sales,C=US"), false},
		{"nil dn", (*dn.DN)(nil), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := d.Equal(c.val); got != c.want {
				t.Errorf("d.Equal(%v) = %v, want %v", c.val, got, c.want)
			}
		})
	}
}

func TestDN_Compare(t *testing.T) {
	t.Parallel()

	cases := []struct {
		a, b string
		want int
	}{
		{"CN=a", "cn=a", 0},
		{"CN=a", "CN=b", -1},
		{"CN=b,O=x", "CN=a,O=x", 1},
		{"", "CN=a", -1},
	}

	for _, c := range cases {
		t.Run(c.a+"|"+c.b, func(t *testing.T) {
			t.Parallel()

			if got := mustParse(t, c.a).Compare(mustParse(t, c.b)); got != c.want {
				t.Errorf("dn.Parse(%q).Compare(%q) = %d, want %d", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestDN_Clone(t *testing.T) {
	t.Parallel()

	in := "OU=Sales+CN=J. Smith,O=Widget Inc."
	d := mustParse(t, in)
	d2 := d.Clone()
	if err := d2.Normalize(); err != nil {
		t.Fatalf("d2.Normalize() error = %v, want nil", err)
	}
	if got := d.String(); got != in {
		t.Errorf("d.String() after normalizing clone = %q, want %q", got, in)
	}
	if !d.Equal(d2) {
		t.Errorf("d.Equal(d.Clone()) = false, want true")
	}
	if (*dn.DN)(nil).Clone() != nil {
		t.Errorf("(*dn.DN)(nil).Clone() != nil")
	}
}

func TestDN_ParentAndAncestor(t *testing.T) {
	t.Parallel()

	d := mustParse(t, "CN=x,O=Y,C=Z")
	if got, want := d.Parent().String(), "O=Y,C=Z"; got != want {
		t.Errorf("d.Parent() = %q, want %q", got, want)
	}
	if !mustParse(t, "C=Z").Parent().IsEmpty() {
		t.Errorf("dn.Parse(\"C=Z\").Parent().IsEmpty() = false, want true")
	}

	cases := []struct {
		name       string
		anc, desc  string
		isAncestor bool
	}{
		{"parent", "o=Y, c=Z", "CN=x,O=Y,C=Z", true},
		{"grand parent", "C=Z", "CN=x,O=Y,C=Z", true},
		{"self", "CN=x,O=Y,C=Z", "cn=x,o=Y,c=Z", false},
		{"child", "CN=x,O=Y,C=Z", "O=Y,C=Z", false},
		{"other branch", "O=W,C=Z", "CN=x,O=Y,C=Z", false},
		{"value case differs", "O=y,C=Z", "CN=x,O=Y,C=Z", false},
		{"empty", "", "CN=x", true},
		{"both empty", "", "", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := mustParse(t, c.anc).IsAncestorOf(mustParse(t, c.desc)); got != c.isAncestor {
				t.Errorf("dn.Parse(%q).IsAncestorOf(%q) = %v, want %v", c.anc, c.desc, got, c.isAncestor)
			}
		})
	}
}

func TestDN_Render(t *testing.T) {
	t.Parallel()

	in := "OU=Sales+CN=J. Smith , O=Widget Inc."
	d := mustParse(t, in)

	cases := []struct {
		name string
		opts *dn.RenderOptions
		want string
	}{
		{"nil options", nil, "OU=Sales+CN=J. Smith,O=Widget Inc."},
		{"current", &dn.RenderOptions{}, "OU=Sales+CN=J. Smith,O=Widget Inc."},
		{"canonical", &dn.RenderOptions{Canonical: true}, "cn=J. Smith+ou=Sales,o=Widget Inc."},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := d.Render(c.opts)
			if err != nil {
				t.Fatalf("d.Render(%+v) error = %v, want nil", c.opts, err)
			}
			if got != c.want {
				t.Errorf("d.Render(%+v) = %q, want %q", c.opts, got, c.want)
			}

			var sb strings.Builder
			n, err := d.RenderTo(&sb, c.opts)
			if err != nil {
				t.Fatalf("d.RenderTo(sb, %+v) error = %v, want nil", c.opts, err)
			}
			if n != len(c.want) || sb.String() != c.want {
				t.Errorf("d.RenderTo(sb, %+v) = (%d, %q), want (%d, %q)", c.opts, n, sb.String(), len(c.want), c.want)
			}
		})
	}
}

func TestDN_Format(t *testing.T) {
	t.Parallel()

	d := mustParse(t, "CN=Steve Kille,O=Isode Limited")
	cases := []struct {
		format string
		want   string
	}{
		{"%s", "CN=Steve Kille,O=Isode Limited"},
		{"%+s", "cn=Steve Kille,o=Isode Limited"},
		{"%q", `"CN=Steve Kille,O=Isode Limited"`},
		{"%v", ""},
	}

	for _, c := range cases {
		t.Run(c.format, func(t *testing.T) {
			t.Parallel()

			got := fmt.Sprintf(c.format, d)
			if c.format == "%v" {
				if !strings.HasPrefix(got, "&{") {
					t.Errorf("fmt.Sprintf(%q, d) = %q, want struct dump", c.format, got)
				}
				return
			}
			if got != c.want {
				t.Errorf("fmt.Sprintf(%q, d) = %q, want %q", c.format, got, c.want)
			}
		})
	}
}

func TestDN_MarshalText(t *testing.T) {
	t.Parallel()

	type entry struct {
		DN *dn.DN `json:"dn"`
	}

	in := entry{DN: mustParse(t, `OU=Sales+CN="J. Smith",O=Widget Inc.`)}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("json.Marshal(%v) error = %v, want nil", in, err)
	}
	if got, want := string(data), `{"dn":"cn=J. Smith+ou=Sales,o=Widget Inc."}`; got != want {
		t.Errorf("json.Marshal(%v) = %s, want %s", in, got, want)
	}

	var out entry
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal(%s) error = %v, want nil", data, err)
	}
	if !out.DN.Equal(in.DN) {
		t.Errorf("json.Unmarshal(%s) = %v, want %v", data, out.DN, in.DN)
	}

	if err := json.Unmarshal([]byte(`{"dn":"no equals sign"}`), &out); err == nil {
		t.Errorf("json.Unmarshal(malformed DN) error = nil, want error")
	}
}

func TestDN_LogValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logger.Info("entry", "dn", mustParse(t, "CN=Steve Kille+UID=42,O=Isode Limited"))

	out := buf.String()
	for _, secret := range []string{"Steve", "Isode"} {
		if strings.Contains(out, secret) {
			t.Errorf("log output %s contains %q", out, secret)
		}
	}
	for _, want := range []string{`"rdns":2`, `"0.CN":"<redacted:11>"`, `"0.UID":"<redacted:2>"`, `"1.O":"<redacted:13>"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %s does not contain %s", out, want)
		}
	}
}

func TestDN_ConcurrentNormalized(t *testing.T) {
	t.Parallel()

	d := mustParse(t, `OU=Sales+CN="J. Smith",O=Widget Inc.,C=US`)
	want := "cn=J. Smith+ou=Sales,o=Widget Inc.,c=US"

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []string
	)
	for i := range 16 {
		wg.Go(func() {
			d2, err := dn.Parse(fmt.Sprintf("CN=user%d,O=Widget Inc.", i))
			if err != nil {
				mu.Lock()
				errs = append(errs, err.Error())
				mu.Unlock()
				return
			}
			for range 50 {
				got, err := d.Normalized()
				if err != nil || got != want {
					mu.Lock()
					errs = append(errs, fmt.Sprintf("d.Normalized() = (%q, %v)", got, err))
					mu.Unlock()
					return
				}
				if _, err := d2.Normalized(); err != nil {
					mu.Lock()
					errs = append(errs, err.Error())
					mu.Unlock()
					return
				}
			}
		})
	}
	wg.Wait()

	if diff := cmp.Diff(errs, []string(nil)); diff != "" {
		t.Errorf("concurrent normalization failed:\n%v", diff)
	}
}

func BenchmarkParse(b *testing.B) {
	in := `CN="Quoted Last, Quoted First"+OU=Sales, O=Space After Comma ; C = Semi's too!`

	b.ResetTimer()
	for b.Loop() {
		if _, err := dn.Parse(in); err != nil {
			b.Fatalf("dn.Parse(%q) error = %v, want nil", in, err)
		}
	}
}

func BenchmarkDN_Normalized(b *testing.B) {
	d := mustParse(b, `CN="Quoted Last, Quoted First"+OU=Sales, O=Space After Comma ; SN=Lu\c4\8di\c4\87`)

	b.ResetTimer()
	for b.Loop() {
		if _, err := d.Normalized(); err != nil {
			b.Fatalf("d.Normalized() error = %v, want nil", err)
		}
	}
}
