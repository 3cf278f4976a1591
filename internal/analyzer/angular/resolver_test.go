package angular

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ksrpraneeth/UserPravah/internal/project"
	"github.com/ksrpraneeth/UserPravah/internal/routes"
)

func loadFixture(t *testing.T, files map[string]string) *project.Project {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	p, err := project.Load(root, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(p.Close)
	return p
}

func resolveFixture(t *testing.T, files map[string]string) *routes.Collection {
	t.Helper()
	p := loadFixture(t, files)
	col := routes.NewCollection()
	r := newResolver(p, col)
	r.run()
	return col
}

func TestResolver_NestedChildren(t *testing.T) {
	col := resolveFixture(t, map[string]string{
		"src/app/app.routes.ts": `
import { provideRouter } from '@angular/router';

const routes = [
  {
    path: 'a',
    component: AComponent,
    children: [
      {
        path: 'b',
        component: BComponent,
        children: [
          { path: 'c', component: CComponent },
        ],
      },
    ],
  },
];

provideRouter(routes);
`,
	})

	for _, want := range []string{"/a", "/a/b", "/a/b/c"} {
		if _, ok := col.Lookup(want); !ok {
			t.Errorf("missing route %s; have %v", want, paths(col))
		}
	}
}

func TestResolver_AbsoluteChildPathReplacesParent(t *testing.T) {
	col := resolveFixture(t, map[string]string{
		"src/app/app.routes.ts": `
import { RouterModule } from '@angular/router';

const routes = [
  {
    path: 'account',
    component: AccountComponent,
    children: [
      { path: '/standalone', component: StandaloneComponent },
    ],
  },
];

RouterModule.forRoot(routes);
`,
	})

	if _, ok := col.Lookup("/standalone"); !ok {
		t.Errorf("absolute child path must not nest under parent; have %v", paths(col))
	}
}

func TestResolver_GuardsAndData(t *testing.T) {
	col := resolveFixture(t, map[string]string{
		"src/app/app.routes.ts": `
import { RouterModule } from '@angular/router';

const routes = [
  {
    path: 'admin',
    component: AdminComponent,
    canActivate: [AuthGuard, RoleGuard],
    canDeactivate: [PendingChangesGuard],
    data: { title: 'Admin', order: 3 },
  },
];

RouterModule.forRoot(routes);
`,
	})

	r, ok := col.Lookup("/admin")
	if !ok {
		t.Fatalf("missing /admin; have %v", paths(col))
	}
	if len(r.Guards) != 3 || r.Guards[0] != "AuthGuard" || r.Guards[2] != "PendingChangesGuard" {
		t.Errorf("unexpected guards: %v", r.Guards)
	}
	if r.Data["title"] != "Admin" {
		t.Errorf("unexpected data: %v", r.Data)
	}
	if r.Data["order"] != "3" {
		t.Errorf("non-string data should keep raw text, got %q", r.Data["order"])
	}
}

func TestResolver_SpreadAndIdentifierElements(t *testing.T) {
	col := resolveFixture(t, map[string]string{
		"src/app/shared.routes.ts": `
export const sharedRoutes = [
  { path: 'help', component: HelpComponent },
];
`,
		"src/app/app.routes.ts": `
import { RouterModule } from '@angular/router';
import { sharedRoutes } from './shared.routes';

const routes = [
  { path: 'home', component: HomeComponent },
  ...sharedRoutes,
];

RouterModule.forRoot(routes);
`,
	})

	for _, want := range []string{"/home", "/help"} {
		if _, ok := col.Lookup(want); !ok {
			t.Errorf("missing route %s; have %v", want, paths(col))
		}
	}
}

func TestResolver_ChildrenDeclaredInAnotherFile(t *testing.T) {
	col := resolveFixture(t, map[string]string{
		"src/app/child.routes.ts": `
export const CHILD_ROUTES = [
  { path: 'alpha', component: AlphaComponent },
  { path: 'beta', component: BetaComponent },
];
`,
		"src/app/app.routes.ts": `
import { RouterModule } from '@angular/router';
import { CHILD_ROUTES } from './child.routes';

const routes = [
  { path: 'parent', component: ParentComponent, children: CHILD_ROUTES },
];

RouterModule.forRoot(routes);
`,
	})

	for _, want := range []string{"/parent", "/parent/alpha", "/parent/beta"} {
		if _, ok := col.Lookup(want); !ok {
			t.Errorf("missing route %s; have %v", want, paths(col))
		}
	}
	alpha, _ := col.Lookup("/parent/alpha")
	if alpha == nil || alpha.Component != "AlphaComponent" {
		t.Errorf("child route must carry the component from the declaring file, got %+v", alpha)
	}
	if alpha != nil && alpha.SourceFile != "src/app/child.routes.ts" {
		t.Errorf("child route attributed to %q, want the declaring file", alpha.SourceFile)
	}
}

func TestResolver_LazyModuleUnderParentPath(t *testing.T) {
	col := resolveFixture(t, map[string]string{
		"src/app/app.routes.ts": `
import { RouterModule } from '@angular/router';

const routes = [
  { path: 'shop', loadChildren: () => import('./shop/shop.module').then(m => m.ShopModule) },
];

RouterModule.forRoot(routes);
`,
		"src/app/shop/shop.module.ts": `
import { NgModule } from '@angular/core';
import { RouterModule } from '@angular/router';

const shopRoutes = [
  { path: '', component: ShopHomeComponent },
  { path: 'cart', component: CartComponent },
];

@NgModule({
  imports: [RouterModule.forChild(shopRoutes)],
})
export class ShopModule {}
`,
	})

	shop, ok := col.Lookup("/shop")
	if !ok {
		t.Fatalf("missing /shop; have %v", paths(col))
	}
	if shop.LazyModule != "./shop/shop.module" {
		t.Errorf("unexpected lazy target: %q", shop.LazyModule)
	}
	cart, ok := col.Lookup("/shop/cart")
	if !ok {
		t.Fatalf("lazy child not expanded under /shop; have %v", paths(col))
	}
	if cart.Component != "CartComponent" {
		t.Errorf("unexpected component: %q", cart.Component)
	}
}

func TestResolver_SharedLazyModuleExpandsUnderEachParent(t *testing.T) {
	col := resolveFixture(t, map[string]string{
		"src/app/app.routes.ts": `
import { RouterModule } from '@angular/router';

const routes = [
  { path: 'store', loadChildren: () => import('./catalog/catalog.module').then(m => m.CatalogModule) },
  { path: 'archive', loadChildren: () => import('./catalog/catalog.module').then(m => m.CatalogModule) },
];

RouterModule.forRoot(routes);
`,
		"src/app/catalog/catalog.module.ts": `
import { NgModule } from '@angular/core';
import { RouterModule } from '@angular/router';

const catalogRoutes = [
  { path: 'items', component: ItemsComponent },
];

@NgModule({
  imports: [RouterModule.forChild(catalogRoutes)],
})
export class CatalogModule {}
`,
	})

	for _, want := range []string{"/store/items", "/archive/items"} {
		if _, ok := col.Lookup(want); !ok {
			t.Errorf("shared module must expand under %s; have %v", want, paths(col))
		}
	}
}

func TestResolver_CyclicLazyModulesTerminate(t *testing.T) {
	col := resolveFixture(t, map[string]string{
		"src/app/app.routes.ts": `
import { RouterModule } from '@angular/router';

const routes = [
  { path: 'a', loadChildren: () => import('./a.module').then(m => m.AModule) },
];

RouterModule.forRoot(routes);
`,
		"src/app/a.module.ts": `
import { NgModule } from '@angular/core';
import { RouterModule } from '@angular/router';

const aRoutes = [
  { path: '', component: AHomeComponent },
  { path: '', loadChildren: () => import('./b.module').then(m => m.BModule) },
];

@NgModule({
  imports: [RouterModule.forChild(aRoutes)],
})
export class AModule {}
`,
		"src/app/b.module.ts": `
import { NgModule } from '@angular/core';
import { RouterModule } from '@angular/router';

const bRoutes = [
  { path: 'bee', component: BeeComponent },
  { path: '', loadChildren: () => import('./a.module').then(m => m.AModule) },
];

@NgModule({
  imports: [RouterModule.forChild(bRoutes)],
})
export class BModule {}
`,
	})

	a, ok := col.Lookup("/a")
	if !ok {
		t.Fatalf("missing /a; have %v", paths(col))
	}
	if a.Component != "AHomeComponent" {
		t.Errorf("unexpected component for /a: %q", a.Component)
	}
	if _, ok := col.Lookup("/a/bee"); !ok {
		t.Errorf("mutually recursive module not expanded once; have %v", paths(col))
	}
}

func TestResolver_StandaloneRoutesFile(t *testing.T) {
	col := resolveFixture(t, map[string]string{
		"src/app/app.routes.ts": `
import { provideRouter } from '@angular/router';

const routes = [
  { path: 'reports', loadChildren: () => import('./reports/reports.routes') },
];

provideRouter(routes);
`,
		"src/app/reports/reports.routes.ts": `
export const REPORT_ROUTES = [
  { path: '', component: ReportListComponent },
  { path: 'monthly', component: MonthlyReportComponent },
];

export default REPORT_ROUTES;
`,
	})

	if _, ok := col.Lookup("/reports/monthly"); !ok {
		t.Fatalf("standalone route file not expanded; have %v", paths(col))
	}
}

func TestResolver_LegacyStringLoadChildren(t *testing.T) {
	col := resolveFixture(t, map[string]string{
		"src/app/app.routes.ts": `
import { RouterModule } from '@angular/router';

const routes = [
  { path: 'legacy', loadChildren: './legacy/legacy.module#LegacyModule' },
];

RouterModule.forRoot(routes);
`,
		"src/app/legacy/legacy.module.ts": `
import { NgModule } from '@angular/core';
import { RouterModule } from '@angular/router';

const legacyRoutes = [
  { path: 'view', component: LegacyViewComponent },
];

@NgModule({
  imports: [RouterModule.forChild(legacyRoutes)],
})
export class LegacyModule {}
`,
	})

	if _, ok := col.Lookup("/legacy/view"); !ok {
		t.Fatalf("legacy #Export target not expanded; have %v", paths(col))
	}
}

func TestResolver_NgModuleImportIndirection(t *testing.T) {
	col := resolveFixture(t, map[string]string{
		"src/app/app.routes.ts": `
import { RouterModule } from '@angular/router';

const routes = [
  { path: 'billing', loadChildren: () => import('./billing/billing.module').then(m => m.BillingModule) },
];

RouterModule.forRoot(routes);
`,
		"src/app/billing/billing.module.ts": `
import { NgModule } from '@angular/core';
import { CommonModule } from '@angular/common';
import { BillingRoutingModule } from './billing-routing.module';

@NgModule({
  imports: [CommonModule, BillingRoutingModule],
})
export class BillingModule {}
`,
		"src/app/billing/billing-routing.module.ts": `
import { NgModule } from '@angular/core';
import { RouterModule } from '@angular/router';

const billingRoutes = [
  { path: 'invoices', component: InvoicesComponent },
];

@NgModule({
  imports: [RouterModule.forChild(billingRoutes)],
})
export class BillingRoutingModule {}
`,
	})

	if _, ok := col.Lookup("/billing/invoices"); !ok {
		t.Fatalf("routing module behind NgModule imports not expanded; have %v", paths(col))
	}
}

func TestResolver_LoadComponent(t *testing.T) {
	col := resolveFixture(t, map[string]string{
		"src/app/app.routes.ts": `
import { provideRouter } from '@angular/router';

const routes = [
  { path: 'profile', loadComponent: () => import('./profile/profile.component').then(m => m.ProfileComponent) },
  { path: 'settings', loadComponent: () => import('./settings/settings.component') },
];

provideRouter(routes);
`,
	})

	profile, ok := col.Lookup("/profile")
	if !ok {
		t.Fatalf("missing /profile; have %v", paths(col))
	}
	if profile.Component != "ProfileComponent" {
		t.Errorf("expected exported name, got %q", profile.Component)
	}

	settings, ok := col.Lookup("/settings")
	if !ok {
		t.Fatalf("missing /settings; have %v", paths(col))
	}
	if settings.Component != "SettingsComponent" {
		t.Errorf("expected file-derived name, got %q", settings.Component)
	}
}

func TestResolver_NonLiteralPathSkippedWithWarning(t *testing.T) {
	p := loadFixture(t, map[string]string{
		"src/app/app.routes.ts": `
import { RouterModule } from '@angular/router';

const dynamicSegment = computeSegment();
const routes = [
  { path: dynamicSegment, component: DynamicComponent },
  { path: 'static', component: StaticComponent },
];

RouterModule.forRoot(routes);
`,
	})
	col := routes.NewCollection()
	r := newResolver(p, col)
	r.run()

	if _, ok := col.Lookup("/static"); !ok {
		t.Fatalf("literal sibling must survive; have %v", paths(col))
	}
	if col.Len() != 1 {
		t.Errorf("dynamic path should be skipped, have %v", paths(col))
	}
	if len(r.warnings) == 0 {
		t.Error("expected a warning for the non-literal path")
	}
}

func TestResolver_MissingRegistrationYieldsEmptyTable(t *testing.T) {
	p := loadFixture(t, map[string]string{
		"src/app/util.ts": "export const x = 1;\n",
	})
	col := routes.NewCollection()
	r := newResolver(p, col)
	r.run()

	if col.Len() != 0 {
		t.Errorf("expected empty table, have %v", paths(col))
	}
	if len(r.warnings) == 0 {
		t.Error("expected a warning about the missing registration")
	}
}

func TestResolver_RootFlag(t *testing.T) {
	col := resolveFixture(t, map[string]string{
		"src/app/app.routes.ts": `
import { RouterModule } from '@angular/router';

const routes = [
  { path: '', component: HomeComponent },
  { path: 'away', component: AwayComponent },
];

RouterModule.forRoot(routes);
`,
	})

	home, ok := col.Lookup("/")
	if !ok {
		t.Fatalf("missing root route; have %v", paths(col))
	}
	if !home.IsRoot {
		t.Error("top-level empty path should carry the root flag")
	}
	away, _ := col.Lookup("/away")
	if away.IsRoot {
		t.Error("non-root route marked root")
	}
}

func paths(col *routes.Collection) []string {
	out := make([]string, 0, col.Len())
	for _, r := range col.Routes() {
		out = append(out, r.FullPath)
	}
	return out
}
