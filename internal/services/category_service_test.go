package services_test

import (
	"testing"

	"moneta/internal/models"
	"moneta/internal/services"
	"moneta/internal/testutil"
)

func createIncomeCategory(title string) *models.Category {
	c := &models.Category{Title: title}
	c.MakeIncome()
	return c
}

func createExpenseCategory(title string) *models.Category {
	c := &models.Category{Title: title}
	c.MakeExpense()
	return c
}

func TestChildCategoryInheritsTypeFromParent(t *testing.T) {
	store := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, store)
	svc := services.NewCategoryService(store)

	a1ID, err := svc.InsertOrUpdate(createIncomeCategory("A1"))
	testutil.AssertNoError(t, err)
	a2ID, err := svc.InsertOrUpdate(createExpenseCategory("A2"))
	testutil.AssertNoError(t, err)

	// Children are deliberately created with the wrong type; the
	// parent's type must win.
	a11ID, err := svc.InsertChildCategory(a1ID, createExpenseCategory("a11"))
	testutil.AssertNoError(t, err)
	a21ID, err := svc.InsertChildCategory(a2ID, createIncomeCategory("a21"))
	testutil.AssertNoError(t, err)

	a1, err := svc.GetCategoryWithParent(a1ID)
	testutil.AssertNoError(t, err)
	a2, err := svc.GetCategoryWithParent(a2ID)
	testutil.AssertNoError(t, err)
	a11, err := svc.GetCategoryWithParent(a11ID)
	testutil.AssertNoError(t, err)
	a21, err := svc.GetCategoryWithParent(a21ID)
	testutil.AssertNoError(t, err)

	if !a1.IsIncome() {
		t.Error("A1 should be income")
	}
	if !a2.IsExpense() {
		t.Error("A2 should be expense")
	}
	if !a11.IsIncome() {
		t.Error("a11 should inherit income from A1")
	}
	if !a21.IsExpense() {
		t.Error("a21 should inherit expense from A2")
	}
}

func TestReparentedCategoryInheritsNewTypeRecursively(t *testing.T) {
	store := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, store)
	svc := services.NewCategoryService(store)

	a1ID, err := svc.InsertOrUpdate(createIncomeCategory("A1"))
	testutil.AssertNoError(t, err)
	a2ID, err := svc.InsertOrUpdate(createExpenseCategory("A2"))
	testutil.AssertNoError(t, err)
	a11ID, err := svc.InsertChildCategory(a1ID, createExpenseCategory("a11"))
	testutil.AssertNoError(t, err)
	a111ID, err := svc.InsertChildCategory(a11ID, createExpenseCategory("a111"))
	testutil.AssertNoError(t, err)

	a11, err := svc.GetCategoryWithParent(a11ID)
	testutil.AssertNoError(t, err)
	if !a11.IsIncome() {
		t.Fatal("a11 should start out income")
	}

	// Move a11 under the expense root; the whole subtree re-types.
	a11.ParentID = &a2ID
	a11.Title = "a21"
	a21ID, err := svc.InsertOrUpdate(a11)
	testutil.AssertNoError(t, err)

	a21, err := svc.GetCategoryWithParent(a21ID)
	testutil.AssertNoError(t, err)
	a211, err := svc.GetCategoryWithParent(a111ID)
	testutil.AssertNoError(t, err)

	if !a21.IsExpense() {
		t.Error("category should inherit new type")
	}
	if !a211.IsExpense() {
		t.Error("child category should inherit new type")
	}
}

func TestRootTypeChangeCascadesToDescendants(t *testing.T) {
	store := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, store)
	svc := services.NewCategoryService(store)

	rootID, err := svc.InsertOrUpdate(createIncomeCategory("Root"))
	testutil.AssertNoError(t, err)
	childID, err := svc.InsertChildCategory(rootID, &models.Category{Title: "Child"})
	testutil.AssertNoError(t, err)
	grandchildID, err := svc.InsertChildCategory(childID, &models.Category{Title: "Grandchild"})
	testutil.AssertNoError(t, err)

	root, err := svc.GetCategoryWithParent(rootID)
	testutil.AssertNoError(t, err)
	root.MakeExpense()
	_, err = svc.InsertOrUpdate(root)
	testutil.AssertNoError(t, err)

	for _, id := range []uint{childID, grandchildID} {
		c, err := svc.GetCategoryWithParent(id)
		testutil.AssertNoError(t, err)
		if !c.IsExpense() {
			t.Errorf("category %d should have been re-typed to expense, got %q", id, c.Type)
		}
	}
}

func TestGetCategoryWithParent(t *testing.T) {
	store := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, store)
	svc := services.NewCategoryService(store)

	parentID, err := svc.InsertOrUpdate(createExpenseCategory("Food"))
	testutil.AssertNoError(t, err)
	childID, err := svc.InsertChildCategory(parentID, &models.Category{Title: "Snacks"})
	testutil.AssertNoError(t, err)

	child, err := svc.GetCategoryWithParent(childID)
	testutil.AssertNoError(t, err)
	if child.Parent == nil {
		t.Fatal("expected parent to be resolved")
	}
	if child.Parent.ID != parentID {
		t.Errorf("expected parent ID %d, got %d", parentID, child.Parent.ID)
	}
	if child.Parent.Title != "Food" {
		t.Errorf("expected parent title Food, got %s", child.Parent.Title)
	}
}

func TestCategoryErrorCases(t *testing.T) {
	t.Run("unknown_parent", func(t *testing.T) {
		store := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, store)
		svc := services.NewCategoryService(store)

		_, err := svc.InsertChildCategory(99999, createExpenseCategory("Orphan"))
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("unknown_category_on_read", func(t *testing.T) {
		store := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, store)
		svc := services.NewCategoryService(store)

		_, err := svc.GetCategoryWithParent(99999)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("empty_title", func(t *testing.T) {
		store := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, store)
		svc := services.NewCategoryService(store)

		_, err := svc.InsertOrUpdate(&models.Category{})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_root_type", func(t *testing.T) {
		store := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, store)
		svc := services.NewCategoryService(store)

		_, err := svc.InsertOrUpdate(&models.Category{Title: "Bad", Type: "savings"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("update_of_missing_category", func(t *testing.T) {
		store := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, store)
		svc := services.NewCategoryService(store)

		ghost := createExpenseCategory("Ghost")
		ghost.ID = 99999
		_, err := svc.InsertOrUpdate(ghost)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestNeutralRootCategoryAllowed(t *testing.T) {
	store := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, store)
	svc := services.NewCategoryService(store)

	id, err := svc.InsertOrUpdate(&models.Category{Title: "Unassigned"})
	testutil.AssertNoError(t, err)

	c, err := svc.GetCategoryWithParent(id)
	testutil.AssertNoError(t, err)
	if c.Type != models.CategoryTypeNeutral {
		t.Errorf("expected neutral type, got %q", c.Type)
	}
}
