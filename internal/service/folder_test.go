package service

import (
	"errors"
	"os"
	"testing"

	"github.com/templui/docportal/internal/model"
	"github.com/templui/docportal/internal/repository"
)

func TestFolderScenario(t *testing.T) {
	env := setupTestEnv(t)

	reports := env.mustFolder(t, "Reports", nil, model.PanelCertification)
	if reports.ID != 1 || reports.Panel != model.PanelCertification {
		t.Fatalf("got folder %d in panel %s, want 1 in certification", reports.ID, reports.Panel)
	}

	year := env.mustFolder(t, "2024", &reports.ID, model.PanelOther)
	if year.Panel != model.PanelCertification {
		t.Errorf("subfolder panel = %s, want %s", year.Panel, model.PanelCertification)
	}

	q1 := env.mustUpload(t, year.ID, "q1.pdf", "quarter one")
	files, err := env.files.InFolder(year.ID)
	if err != nil {
		t.Fatalf("InFolder() error = %v", err)
	}
	if len(files) != 1 || files[0].Filename != "q1.pdf" {
		t.Fatalf("InFolder() = %v, want exactly q1.pdf", files)
	}

	err = env.folders.Delete(reports.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	for _, id := range []int64{reports.ID, year.ID} {
		_, err = env.folders.ByID(id)
		if !errors.Is(err, repository.ErrFolderNotFound) {
			t.Errorf("ByID(%d) error = %v, want ErrFolderNotFound", id, err)
		}
	}
	_, err = env.files.ByID(q1.ID)
	if !errors.Is(err, repository.ErrFileNotFound) {
		t.Errorf("ByID(file) error = %v, want ErrFileNotFound", err)
	}
	if env.storage.Exists(q1.Filepath) {
		t.Errorf("payload %s still exists", q1.Filepath)
	}
}

func TestPanelInheritanceAcrossLevels(t *testing.T) {
	env := setupTestEnv(t)

	parent := env.mustFolder(t, "Root", nil, model.PanelHeader)
	for _, panel := range model.Panels() {
		child := env.mustFolder(t, "child-"+panel.String(), &parent.ID, panel)
		grandchild := env.mustFolder(t, "grandchild", &child.ID, model.PanelOther)
		if child.Panel != model.PanelHeader || grandchild.Panel != model.PanelHeader {
			t.Errorf("panel %s: child %s, grandchild %s, want %s", panel, child.Panel, grandchild.Panel, model.PanelHeader)
		}
	}
}

func TestCreateFolderRejectsBadInput(t *testing.T) {
	env := setupTestEnv(t)
	root := env.mustFolder(t, "Root", nil, model.PanelOther)

	tests := []struct {
		name     string
		folder   string
		parentID *int64
		panel    model.Panel
		wantErr  error
	}{
		{"empty name", "", nil, model.PanelOther, ErrInvalidInput},
		{"blank name", "   ", &root.ID, model.PanelOther, ErrInvalidInput},
		{"separator", "a/b", nil, model.PanelOther, ErrInvalidInput},
		{"unknown panel", "Docs", nil, model.Panel("finance"), ErrInvalidInput},
		{"missing parent", "Docs", ptr(int64(999)), model.PanelOther, repository.ErrFolderNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.folders.Create(tt.folder, tt.parentID, tt.panel)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	all, err := env.folders.All(nil)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("got %d folders after rejected creates, want 1", len(all))
	}
}

func TestCreateFolderTrimsName(t *testing.T) {
	env := setupTestEnv(t)

	// e + combining acute is stored precomposed
	folder := env.mustFolder(t, "  Re\u0301sume\u0301s  ", nil, model.PanelOther)
	if folder.Name != "R\u00e9sum\u00e9s" {
		t.Errorf("Name = %q, want %q", folder.Name, "R\u00e9sum\u00e9s")
	}
}

func TestSubfolders(t *testing.T) {
	env := setupTestEnv(t)

	b := env.mustFolder(t, "beta", nil, model.PanelCertification)
	env.mustFolder(t, "alpha", nil, model.PanelCertification)
	env.mustFolder(t, "Gamma", nil, model.PanelOther)
	env.mustFolder(t, "z-child", &b.ID, model.PanelCertification)
	env.mustFolder(t, "a-child", &b.ID, model.PanelCertification)

	names := func(folders []*model.Folder) []string {
		var out []string
		for _, f := range folders {
			out = append(out, f.Name)
		}
		return out
	}

	tests := []struct {
		name     string
		parentID *int64
		panel    *model.Panel
		want     []string
	}{
		{"all roots", nil, nil, []string{"Gamma", "alpha", "beta"}},
		{"roots of panel", nil, ptr(model.PanelCertification), []string{"alpha", "beta"}},
		{"children", &b.ID, nil, []string{"a-child", "z-child"}},
		{"children ignore panel", &b.ID, ptr(model.PanelOther), []string{"a-child", "z-child"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			folders, err := env.folders.Subfolders(tt.parentID, tt.panel)
			if err != nil {
				t.Fatalf("Subfolders() error = %v", err)
			}
			got := names(folders)
			if len(got) != len(tt.want) {
				t.Fatalf("Subfolders() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Subfolders() = %v, want %v", got, tt.want)
				}
			}
		})
	}

	all, err := env.folders.All(ptr(model.PanelCertification))
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 4 {
		t.Errorf("All(certification) returned %d folders, want 4", len(all))
	}
}

func TestRenameFolder(t *testing.T) {
	env := setupTestEnv(t)
	root := env.mustFolder(t, "Old", nil, model.PanelCertification)
	child := env.mustFolder(t, "Child", &root.ID, model.PanelCertification)

	err := env.folders.Rename(root.ID, "New")
	if err != nil {
		t.Fatalf("Rename() error = %v", err)
	}

	got, err := env.folders.ByID(root.ID)
	if err != nil {
		t.Fatalf("ByID() error = %v", err)
	}
	if got.Name != "New" || got.Panel != model.PanelCertification || got.ParentID != nil {
		t.Errorf("after rename got %+v", got)
	}

	gotChild, err := env.folders.ByID(child.ID)
	if err != nil {
		t.Fatalf("ByID() error = %v", err)
	}
	if gotChild.ParentID == nil || *gotChild.ParentID != root.ID {
		t.Errorf("child parent changed: %v", gotChild.ParentID)
	}

	err = env.folders.Rename(999, "New")
	if !errors.Is(err, repository.ErrFolderNotFound) {
		t.Errorf("Rename(missing) error = %v, want ErrFolderNotFound", err)
	}

	err = env.folders.Rename(root.ID, "")
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Rename(empty) error = %v, want ErrInvalidInput", err)
	}
}

func testCascadeDelete(t *testing.T, env *testEnv) {
	t.Helper()

	root := env.mustFolder(t, "Root", nil, model.PanelCertification)
	a := env.mustFolder(t, "A", &root.ID, model.PanelCertification)
	b := env.mustFolder(t, "B", &a.ID, model.PanelCertification)
	other := env.mustFolder(t, "Other", nil, model.PanelCertification)

	deleted := []*model.File{
		env.mustUpload(t, root.ID, "root.pdf", "root"),
		env.mustUpload(t, a.ID, "a.pdf", "a"),
		env.mustUpload(t, b.ID, "b.docx", "b"),
	}
	kept := env.mustUpload(t, other.ID, "kept.pdf", "kept")

	err := env.folders.Delete(root.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var folders, files int
	err = env.db.Get(&folders, `SELECT COUNT(*) FROM folders`)
	if err != nil {
		t.Fatal(err)
	}
	err = env.db.Get(&files, `SELECT COUNT(*) FROM files`)
	if err != nil {
		t.Fatal(err)
	}
	if folders != 1 || files != 1 {
		t.Errorf("got %d folders and %d files left, want 1 and 1", folders, files)
	}

	for _, f := range deleted {
		if env.storage.Exists(f.Filepath) {
			t.Errorf("payload %s still exists", f.Filepath)
		}
	}
	if !env.storage.Exists(kept.Filepath) {
		t.Errorf("payload of other folder was removed")
	}
}

func TestDeleteFolderCascades(t *testing.T) {
	testCascadeDelete(t, setupTestEnv(t))
}

func TestDeleteFolderCascadesWithoutForeignKeys(t *testing.T) {
	testCascadeDelete(t, setupTestEnvWith(t, "?_pragma=foreign_keys(0)"))
}

func TestDeleteFolderMissing(t *testing.T) {
	env := setupTestEnv(t)

	err := env.folders.Delete(42)
	if !errors.Is(err, repository.ErrFolderNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrFolderNotFound", err)
	}
}

func TestDeleteFolderToleratesMissingPayload(t *testing.T) {
	env := setupTestEnv(t)
	root := env.mustFolder(t, "Root", nil, model.PanelOther)
	file := env.mustUpload(t, root.ID, "gone.pdf", "x")

	err := os.Remove(file.Filepath)
	if err != nil {
		t.Fatal(err)
	}

	err = env.folders.Delete(root.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	_, err = env.files.ByID(file.ID)
	if !errors.Is(err, repository.ErrFileNotFound) {
		t.Errorf("file row survived: %v", err)
	}
}

func TestFolderPath(t *testing.T) {
	env := setupTestEnvWith(t, "?_pragma=foreign_keys(0)")

	root := env.mustFolder(t, "Root", nil, model.PanelOther)
	mid := env.mustFolder(t, "Mid", &root.ID, model.PanelOther)
	leaf := env.mustFolder(t, "Leaf", &mid.ID, model.PanelOther)

	path, err := env.folders.Path(leaf.ID)
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	want := []int64{root.ID, mid.ID, leaf.ID}
	if len(path) != len(want) {
		t.Fatalf("Path() returned %d folders, want %d", len(path), len(want))
	}
	for i, f := range path {
		if f.ID != want[i] {
			t.Errorf("path[%d] = %d, want %d", i, f.ID, want[i])
		}
	}

	path, err = env.folders.Path(999)
	if err != nil || len(path) != 0 {
		t.Errorf("Path(missing) = %v, %v, want empty", path, err)
	}

	// A broken parent link ends the walk
	_, err = env.db.Exec(`UPDATE folders SET parent_id = 500 WHERE id = ?`, mid.ID)
	if err != nil {
		t.Fatal(err)
	}
	path, err = env.folders.Path(leaf.ID)
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	if len(path) != 2 || path[0].ID != mid.ID || path[1].ID != leaf.ID {
		t.Errorf("Path() with broken link = %v, want [Mid Leaf]", path)
	}

	// So does a cycle
	_, err = env.db.Exec(`UPDATE folders SET parent_id = ? WHERE id = ?`, leaf.ID, mid.ID)
	if err != nil {
		t.Fatal(err)
	}
	path, err = env.folders.Path(leaf.ID)
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	if len(path) != 2 {
		t.Errorf("Path() with cycle returned %d folders, want 2", len(path))
	}
}

func TestSubtreeIDs(t *testing.T) {
	env := setupTestEnvWith(t, "?_pragma=foreign_keys(0)")

	root := env.mustFolder(t, "Root", nil, model.PanelOther)
	a := env.mustFolder(t, "A", &root.ID, model.PanelOther)
	b := env.mustFolder(t, "B", &root.ID, model.PanelOther)
	c := env.mustFolder(t, "C", &a.ID, model.PanelOther)
	env.mustFolder(t, "Elsewhere", nil, model.PanelOther)

	ids, err := env.folders.SubtreeIDs(root.ID)
	if err != nil {
		t.Fatalf("SubtreeIDs() error = %v", err)
	}
	want := map[int64]bool{a.ID: true, b.ID: true, c.ID: true}
	if len(ids) != len(want) {
		t.Fatalf("SubtreeIDs() = %v, want %d ids", ids, len(want))
	}
	for _, id := range ids {
		if !want[id] {
			t.Errorf("unexpected id %d in subtree", id)
		}
	}

	leaf, err := env.folders.SubtreeIDs(c.ID)
	if err != nil || len(leaf) != 0 {
		t.Errorf("SubtreeIDs(leaf) = %v, %v, want empty", leaf, err)
	}

	_, err = env.db.Exec(`UPDATE folders SET parent_id = ? WHERE id = ?`, c.ID, root.ID)
	if err != nil {
		t.Fatal(err)
	}
	_, err = env.folders.SubtreeIDs(root.ID)
	if !errors.Is(err, repository.ErrHierarchyCorrupt) {
		t.Errorf("SubtreeIDs(cycle) error = %v, want ErrHierarchyCorrupt", err)
	}
	if !errors.Is(err, repository.ErrStorage) {
		t.Errorf("ErrHierarchyCorrupt should be a storage failure")
	}
}

func TestFolderTree(t *testing.T) {
	env := setupTestEnv(t)

	root := env.mustFolder(t, "Root", nil, model.PanelCertification)
	a := env.mustFolder(t, "A", &root.ID, model.PanelCertification)
	b := env.mustFolder(t, "B", &a.ID, model.PanelCertification)
	env.mustFolder(t, "Other", nil, model.PanelHeader)

	env.mustUpload(t, root.ID, "1.pdf", "1")
	env.mustUpload(t, a.ID, "2.pdf", "2")
	env.mustUpload(t, b.ID, "3.pdf", "3")
	env.mustUpload(t, b.ID, "4.pdf", "4")

	roots, err := env.folders.Tree(ptr(model.PanelCertification))
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if len(roots) != 1 {
		t.Fatalf("Tree() returned %d roots, want 1", len(roots))
	}

	node := roots[0]
	counts := []int{4, 3, 2}
	for depth, want := range counts {
		if node.FileCount != want {
			t.Errorf("depth %d: FileCount = %d, want %d", depth, node.FileCount, want)
		}
		if depth < len(counts)-1 {
			if len(node.Children) != 1 {
				t.Fatalf("depth %d: %d children, want 1", depth, len(node.Children))
			}
			node = node.Children[0]
		}
	}

	all, err := env.folders.Tree(nil)
	if err != nil {
		t.Fatalf("Tree(nil) error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Tree(nil) returned %d roots, want 2", len(all))
	}
}
