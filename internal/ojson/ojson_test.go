/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package ojson

import "testing"

func TestWriter_UnicodeEscaping(t *testing.T) {
	o := NewObject()
	o.Set("unicode", String("Пр2ивет"))

	got := Writer{}.Write(FromObject(o))
	want := `{"unicode":"\u041f\u04402\u0438\u0432\u0435\u0442"}`
	if got != want {
		t.Errorf("Write() = %q, want %q", got, want)
	}
}

func TestReader_RoundTripsUnicodeEscape(t *testing.T) {
	doc := `{"unicode":"Пр2ивет"}`
	v, err := Reader{}.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	s, ok := v.AsObject().Get("unicode")
	if !ok {
		t.Fatalf("missing key \"unicode\"")
	}
	if got, want := s.AsString(), "Пр2ивет"; got != want {
		t.Errorf("roundtrip = %q, want %q", got, want)
	}
}

func TestWriter_PreservesInsertionOrder(t *testing.T) {
	o := NewObject()
	o.Set("z", Int(1))
	o.Set("a", Int(2))
	o.Set("m", Int(3))

	got := Writer{}.Write(FromObject(o))
	want := `{"z":1,"a":2,"m":3}`
	if got != want {
		t.Errorf("Write() = %q, want %q", got, want)
	}
}

func TestReader_DuplicateKeyRejected(t *testing.T) {
	_, err := Reader{}.Parse([]byte(`{"a":1,"a":2}`))
	if err == nil {
		t.Fatalf("expected error for duplicate key")
	}
}

func TestReader_IntVsFloat(t *testing.T) {
	v, err := Reader{}.Parse([]byte(`{"i":42,"f":42.5}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	obj := v.AsObject()
	i, _ := obj.Get("i")
	if i.Kind() != KindInt || i.AsInt() != 42 {
		t.Errorf("expected int 42, got %v", i)
	}
	f, _ := obj.Get("f")
	if f.Kind() != KindFloat || f.AsFloat() != 42.5 {
		t.Errorf("expected float 42.5, got %v", f)
	}
}

func TestReader_RejectsTrailingData(t *testing.T) {
	_, err := Reader{}.Parse([]byte(`{}garbage`))
	if err == nil {
		t.Fatalf("expected error for trailing data")
	}
}

func TestReader_RejectsScalarTopLevel(t *testing.T) {
	_, err := Reader{}.Parse([]byte(`"just a string"`))
	if err == nil {
		t.Fatalf("expected error for scalar top-level value")
	}
}

func TestRoundTrip_CanonicalInsertionOrder(t *testing.T) {
	src := `{"name":"com.x.y","version":"1.2.3","keywords":["a","b"]}`
	v, err := Reader{}.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got := Writer{}.Write(v)
	if got != src {
		t.Errorf("round trip = %q, want %q", got, src)
	}
}
