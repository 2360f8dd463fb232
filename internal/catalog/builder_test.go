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

package catalog

import (
	"testing"
	"time"

	"github.com/deepdreamgames/pachka/internal/ojson"
)

func mustDoc(t *testing.T, name, version string) *VersionDocument {
	t.Helper()
	o := ojson.NewObject()
	o.Set("name", ojson.String(name))
	o.Set("version", ojson.String(version))
	doc, err := NewVersionDocument(o, "deadbeef", "pkg-"+version+".tgz")
	if err != nil {
		t.Fatalf("NewVersionDocument() error = %v", err)
	}
	return doc
}

func TestBuilder_SelectsLatestByPrecedence(t *testing.T) {
	b := NewBuilder()
	for _, v := range []string{"1.0.0", "2.0.0", "1.5.0-beta"} {
		if err := b.Add(mustDoc(t, "com.x.y", v), time.Now()); err != nil {
			t.Fatalf("Add(%s) error = %v", v, err)
		}
	}
	c, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	entry, ok := c.Get("com.x.y")
	if !ok {
		t.Fatalf("package not found")
	}
	if entry.Latest != "2.0.0" {
		t.Errorf("Latest = %q, want 2.0.0", entry.Latest)
	}
}

func TestBuilder_DuplicateVersionRejected(t *testing.T) {
	b := NewBuilder()
	if err := b.Add(mustDoc(t, "com.x.y", "1.0.0"), time.Now()); err != nil {
		t.Fatalf("first Add() error = %v", err)
	}
	if err := b.Add(mustDoc(t, "com.x.y", "1.0.0"), time.Now()); err == nil {
		t.Fatalf("expected error on duplicate version")
	}
	c, err := b.Build()
	if err == nil {
		t.Fatalf("expected Build() to report the duplicate error")
	}
	entry, _ := c.Get("com.x.y")
	if len(entry.Versions) != 1 {
		t.Errorf("Versions len = %d, want 1", len(entry.Versions))
	}
}

func TestBuilder_DuplicateVersionRejected_CaseInsensitive(t *testing.T) {
	b := NewBuilder()
	if err := b.Add(mustDoc(t, "com.x.y", "1.0.0-Alpha"), time.Now()); err != nil {
		t.Fatalf("first Add() error = %v", err)
	}
	if err := b.Add(mustDoc(t, "com.x.y", "1.0.0-alpha"), time.Now()); err == nil {
		t.Fatalf("expected error on duplicate version differing only by case")
	}
	c, err := b.Build()
	if err == nil {
		t.Fatalf("expected Build() to report the duplicate error")
	}
	entry, _ := c.Get("com.x.y")
	if len(entry.Versions) != 1 {
		t.Errorf("Versions len = %d, want 1", len(entry.Versions))
	}
}

func TestBuilder_DropsInvalidSemverVersionAndEmptyPackages(t *testing.T) {
	b := NewBuilder()
	if err := b.Add(mustDoc(t, "com.only.bad", "not-a-version"), time.Now()); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	c, err := b.Build()
	if err == nil {
		t.Fatalf("expected Build() to report invalid semver")
	}
	if _, ok := c.Get("com.only.bad"); ok {
		t.Errorf("expected empty package to be dropped")
	}
}

func TestCatalog_GetIsCaseInsensitive(t *testing.T) {
	b := NewBuilder()
	b.Add(mustDoc(t, "Com.X.Y", "1.0.0"), time.Now())
	c, _ := b.Build()
	if _, ok := c.Get("com.x.y"); !ok {
		t.Errorf("expected case-insensitive lookup to find the package")
	}
}

func TestCatalog_Search(t *testing.T) {
	b := NewBuilder()
	b.Add(mustDoc(t, "com.unity.textmeshpro", "1.0.0"), time.Now())
	b.Add(mustDoc(t, "com.unity.burst", "1.0.0"), time.Now())
	b.Add(mustDoc(t, "com.other.thing", "1.0.0"), time.Now())
	c, _ := b.Build()

	matches := c.Search("unity")
	if len(matches) != 2 {
		t.Fatalf("Search() returned %d matches, want 2", len(matches))
	}
	if matches[0].Name != "com.unity.burst" || matches[1].Name != "com.unity.textmeshpro" {
		t.Errorf("Search() order = [%s, %s], want sorted by name", matches[0].Name, matches[1].Name)
	}
}
