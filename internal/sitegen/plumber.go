// internal/sitegen/plumber.go
//
// Plumber page: blue/gray palette, stacked service rows, a service-area
// section, a 24/7 call-now banner, and a quote form with a service-type
// dropdown populated from the client's service list.
package sitegen

const plumberTmpl = `<!DOCTYPE html>
<html lang="en">
{{template "head" .}}
<body class="bg-gray-50">
  <!-- Hero Section -->
  <section class="bg-gradient-to-r from-blue-600 to-gray-700 text-white py-20 px-4">
    <div class="max-w-6xl mx-auto text-center">
      <h1 class="text-5xl md:text-6xl font-bold mb-4">{{.Data.BusinessName}}</h1>
      <p class="text-xl md:text-2xl mb-8">Professional plumbing services you can trust</p>
      <a href="tel:{{.Data.Phone}}" class="inline-block bg-white text-blue-600 px-8 py-4 rounded-lg text-lg font-semibold hover:bg-gray-100 transition-colors shadow-lg">
        Emergency: {{.Data.Phone}}
      </a>
    </div>
  </section>

  <!-- About Section -->
  <section class="py-16 px-4 bg-white">
    <div class="max-w-4xl mx-auto">
      <h2 class="text-4xl font-bold text-center mb-8 text-gray-900">About Us</h2>
      <p class="text-lg text-gray-700 leading-relaxed text-center">{{.Data.AboutUs}}</p>
    </div>
  </section>

  <!-- Services Section -->
  <section class="py-16 px-4 bg-gray-50">
    <div class="max-w-4xl mx-auto">
      <h2 class="text-4xl font-bold text-center mb-12 text-gray-900">Our Services</h2>
      <div class="space-y-4">
        {{range .Data.Services}}
        <div class="bg-white rounded-lg shadow-md p-6 hover:shadow-xl transition-shadow">
          <div class="flex items-center">
            <div class="w-12 h-12 bg-blue-100 rounded-full flex items-center justify-center mr-4">
              <span class="text-blue-600 text-xl">&#128295;</span>
            </div>
            <h3 class="text-xl font-semibold text-gray-900">{{.}}</h3>
          </div>
        </div>
        {{end}}
      </div>
    </div>
  </section>

  <!-- Service Area Section -->
  {{if .Data.Address}}
  <section class="py-16 px-4 bg-white">
    <div class="max-w-4xl mx-auto text-center">
      <h2 class="text-4xl font-bold mb-8 text-gray-900">Service Area</h2>
      <p class="text-xl text-gray-700 mb-4">{{.Data.Address}}</p>
      <p class="text-gray-600">We serve the local area with fast, reliable service</p>
    </div>
  </section>
  {{end}}

  {{template "hoursSection" .}}

  <!-- CTA Section -->
  <section class="py-16 px-4 bg-gradient-to-r from-blue-600 to-gray-700 text-white">
    <div class="max-w-4xl mx-auto text-center">
      <h2 class="text-4xl font-bold mb-4">Available 24/7</h2>
      <p class="text-xl mb-8">Emergency service available around the clock</p>
      <a href="tel:{{.Data.Phone}}" class="inline-block bg-white text-blue-600 px-8 py-4 rounded-lg text-lg font-semibold hover:bg-gray-100 transition-colors">
        Call Now: {{.Data.Phone}}
      </a>
    </div>
  </section>

  <!-- Quote Form Section -->
  <section class="py-16 px-4 bg-gray-50">
    <div class="max-w-2xl mx-auto">
      <h2 class="text-4xl font-bold text-center mb-8 text-gray-900">Request a Quote</h2>
      <form id="contactForm" class="bg-white rounded-lg shadow-md p-8">
        <div class="mb-6">
          <label for="name" class="block text-gray-700 font-semibold mb-2">Name *</label>
          <input type="text" id="name" name="name" required class="w-full px-4 py-3 border border-gray-300 rounded-lg focus:ring-2 focus:ring-blue-500 focus:border-transparent" placeholder="Your name">
        </div>
        <div class="mb-6">
          <label for="email" class="block text-gray-700 font-semibold mb-2">Email *</label>
          <input type="email" id="email" name="email" required class="w-full px-4 py-3 border border-gray-300 rounded-lg focus:ring-2 focus:ring-blue-500 focus:border-transparent" placeholder="your@email.com">
        </div>
        <div class="mb-6">
          <label for="phone" class="block text-gray-700 font-semibold mb-2">Phone *</label>
          <input type="tel" id="phone" name="phone" required class="w-full px-4 py-3 border border-gray-300 rounded-lg focus:ring-2 focus:ring-blue-500 focus:border-transparent" placeholder="Your phone number">
        </div>
        <div class="mb-6">
          <label for="serviceType" class="block text-gray-700 font-semibold mb-2">Service Type *</label>
          <select id="serviceType" name="serviceType" required class="w-full px-4 py-3 border border-gray-300 rounded-lg focus:ring-2 focus:ring-blue-500 focus:border-transparent">
            <option value="">Select a service</option>
            {{range .Data.Services}}
            <option value="{{.}}">{{.}}</option>
            {{end}}
            <option value="other">Other</option>
          </select>
        </div>
        <div class="mb-6">
          <label for="message" class="block text-gray-700 font-semibold mb-2">Message *</label>
          <textarea id="message" name="message" required rows="5" class="w-full px-4 py-3 border border-gray-300 rounded-lg focus:ring-2 focus:ring-blue-500 focus:border-transparent" placeholder="Describe your plumbing needs"></textarea>
        </div>
        <button type="submit" class="w-full bg-blue-600 text-white px-8 py-4 rounded-lg text-lg font-semibold hover:bg-blue-700 transition-colors">
          Send Request
        </button>
        <div id="formMessage" class="mt-4 text-center hidden"></div>
      </form>
    </div>
  </section>

  {{template "contactInfo" .}}
  {{template "footer" .}}
  {{template "contactScript" .}}
</body>
</html>`
